package wire

import (
	"crypto/rand"
	"math/big"

	"github.com/cbrgm/resolve/internal/werrors"
)

// sectionPreallocCap bounds the capacity reserved for a section slice based
// on the wire count field, so a hostile qdcount/ancount/nscount/arcount can't
// drive an oversized allocation before a single byte of the section is read
// (§9 Open Question (b); not wire-observable).
const sectionPreallocCap = 64

func prealloc(count uint16) int {
	if int(count) > sectionPreallocCap {
		return sectionPreallocCap
	}
	return int(count)
}

// DecodeMessage decodes a complete DNS message from buf. Any bytes left over
// after all four sections are consumed cause ExtraneousData (§4.3.5).
func DecodeMessage(buf []byte) (Message, error) {
	r := NewReader(buf)
	header, counts, err := decodeHeader(r)
	if err != nil {
		return Message{}, err
	}

	questions := make([]Question, 0, prealloc(counts[0]))
	for i := uint16(0); i < counts[0]; i++ {
		q, err := decodeQuestion(r)
		if err != nil {
			return Message{}, err
		}
		questions = append(questions, q)
	}

	decodeResources := func(n uint16) ([]Resource, error) {
		out := make([]Resource, 0, prealloc(n))
		for i := uint16(0); i < n; i++ {
			res, err := decodeResource(r)
			if err != nil {
				return nil, err
			}
			out = append(out, res)
		}
		return out, nil
	}

	answer, err := decodeResources(counts[1])
	if err != nil {
		return Message{}, err
	}
	authority, err := decodeResources(counts[2])
	if err != nil {
		return Message{}, err
	}
	additional, err := decodeResources(counts[3])
	if err != nil {
		return Message{}, err
	}

	if !r.AtEnd() {
		return Message{}, &werrors.WireError{Kind: werrors.ExtraneousData, Operation: "decode message", Offset: r.Pos()}
	}

	return Message{
		Header:     header,
		Question:   questions,
		Answer:     answer,
		Authority:  authority,
		Additional: additional,
	}, nil
}

func decodeQuestion(r *Reader) (Question, error) {
	name, err := r.ReadName()
	if err != nil {
		return Question{}, err
	}
	qtype, err := r.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	qclass, err := r.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	return Question{Name: name, Type: RecordType(qtype), Class: Class(qclass)}, nil
}

func decodeResource(r *Reader) (Resource, error) {
	name, err := r.ReadName()
	if err != nil {
		return Resource{}, err
	}
	rtype, err := r.ReadUint16()
	if err != nil {
		return Resource{}, err
	}
	rclass, err := r.ReadUint16()
	if err != nil {
		return Resource{}, err
	}
	ttl, err := r.ReadUint32()
	if err != nil {
		return Resource{}, err
	}
	rdlen, err := r.ReadUint16()
	if err != nil {
		return Resource{}, err
	}
	raw, err := r.ReadBytes(int(rdlen))
	if err != nil {
		return Resource{}, err
	}
	data := make([]byte, len(raw))
	copy(data, raw)

	return Resource{
		Name:  name,
		Type:  RecordType(rtype),
		Class: Class(rclass),
		TTL:   ttl,
		Data:  data,
	}, nil
}

// EncodeMessage encodes msg into its wire form. Section counts are derived
// from the slice lengths; a section longer than 65535 entries fails with
// TooLong, as does output that would exceed MessageLimit (§4.3.6).
func EncodeMessage(msg Message) ([]byte, error) {
	counts, err := sectionCountsFor(msg)
	if err != nil {
		return nil, err
	}

	w := NewWriter()
	if err := encodeHeader(w, msg.Header, counts); err != nil {
		return nil, err
	}
	for _, q := range msg.Question {
		if err := encodeQuestion(w, q); err != nil {
			return nil, err
		}
	}
	for _, sec := range [][]Resource{msg.Answer, msg.Authority, msg.Additional} {
		for _, res := range sec {
			if err := encodeResource(w, res); err != nil {
				return nil, err
			}
		}
	}
	return w.Bytes(), nil
}

func sectionCountsFor(msg Message) (sectionCounts, error) {
	lens := [4]int{len(msg.Question), len(msg.Answer), len(msg.Authority), len(msg.Additional)}
	var counts sectionCounts
	for i, n := range lens {
		if n > 0xFFFF {
			return sectionCounts{}, &werrors.WireError{Kind: werrors.TooLong, Operation: "encode message", Detail: "section has more than 65535 entries"}
		}
		counts[i] = uint16(n)
	}
	return counts, nil
}

func encodeQuestion(w *Writer, q Question) error {
	if err := w.WriteName(q.Name); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(q.Type)); err != nil {
		return err
	}
	return w.WriteUint16(uint16(q.Class))
}

func encodeResource(w *Writer, res Resource) error {
	if err := w.WriteName(res.Name); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(res.Type)); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(res.Class)); err != nil {
		return err
	}
	if err := w.WriteUint32(res.TTL); err != nil {
		return err
	}
	if len(res.Data) > 0xFFFF {
		return &werrors.WireError{Kind: werrors.TooLong, Operation: "encode resource", Detail: "rdata exceeds 65535 bytes"}
	}
	if err := w.WriteUint16(uint16(len(res.Data))); err != nil {
		return err
	}
	return w.WriteBytes(res.Data)
}

// IDGenerator produces DNS message IDs: a 16-bit counter seeded from a
// random value at first use and incremented with wraparound on each call
// (§4.3.7). A Resolver owns one generator for its lifetime, matching the
// single-threaded, per-instance use contract the rest of the engine assumes
// (§5); no atomic access or locking is needed.
type IDGenerator struct {
	next   uint16
	seeded bool
}

// Next returns the next message ID.
func (g *IDGenerator) Next() uint16 {
	if !g.seeded {
		g.next = randomUint16()
		g.seeded = true
	}
	id := g.next
	g.next++
	return id
}

func randomUint16() uint16 {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<16))
	if err != nil {
		return 0
	}
	return uint16(n.Uint64())
}
