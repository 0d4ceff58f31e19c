package sink

import "encoding/binary"

// Int16Reader reads the sink as signed 16 bit little endian mono PCM, the
// layout speaker backends consume. Missing samples are played as silence.
// Read converts at most the scratch size per pass and never allocates.
type Int16Reader struct {
	sink    *Sink
	scratch []int32
}

// NewInt16Reader returns a reader converting up to frames samples per pass.
// Values below 1 mean DefaultFrameSize.
func NewInt16Reader(s *Sink, frames int) *Int16Reader {
	if frames < 1 {
		frames = DefaultFrameSize
	}
	return &Int16Reader{sink: s, scratch: make([]int32, frames)}
}

func (r *Int16Reader) Read(p []byte) (int, error) {
	n := len(p) / 2
	for done := 0; done < n; {
		buf := r.scratch[:min(n-done, len(r.scratch))]
		got := r.sink.Read(buf)
		clear(buf[got:])
		for i, v := range buf {
			binary.LittleEndian.PutUint16(p[2*(done+i):], uint16(int16(v>>16)))
		}
		done += len(buf)
	}
	return 2 * n, nil
}
