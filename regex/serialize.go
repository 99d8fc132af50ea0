package regex

import (
	"bytes"
	"encoding/binary"
)

// serializeDFA packs a dfa into a flat byte table in the given order:
//
//	uint32 numStates
//	uint32 startState
//	for each state: uint32[256] transitions (NoState = 0xFFFFFFFF), uint8 accept
//
// There is no struct-alignment padding: every field is written at its
// natural width back to back, so the forward/reverse × LE/BE vectors
// differ only in the byte order of the multi-byte fields.
func serializeDFA(d *dfa, order binary.ByteOrder) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, order, uint32(len(d.states)))
	binary.Write(&buf, order, uint32(d.start))
	for _, st := range d.states {
		for _, t := range st.trans {
			if t < 0 {
				binary.Write(&buf, order, uint32(0xFFFFFFFF))
			} else {
				binary.Write(&buf, order, uint32(t))
			}
		}
		if st.accept {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}

// deserializeDFA is the inverse of serializeDFA; used by FromTables to drive a
// compiled table without needing to keep the original *dfa around.
func deserializeDFA(data []byte, order binary.ByteOrder) (*dfa, error) {
	r := bytes.NewReader(data)
	var numStates, start uint32
	if err := binary.Read(r, order, &numStates); err != nil {
		return nil, err
	}
	if err := binary.Read(r, order, &start); err != nil {
		return nil, err
	}
	d := &dfa{start: int32(start)}
	d.states = make([]dfaState, numStates)
	for i := range d.states {
		for j := 0; j < 256; j++ {
			var t uint32
			if err := binary.Read(r, order, &t); err != nil {
				return nil, err
			}
			if t == 0xFFFFFFFF {
				d.states[i].trans[j] = -1
			} else {
				d.states[i].trans[j] = int32(t)
			}
		}
		var accept uint8
		if err := binary.Read(r, order, &accept); err != nil {
			return nil, err
		}
		d.states[i].accept = accept != 0
	}
	return d, nil
}
