package secure

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrLineTooLong = errors.New("input line is too long")
)

// ReadLine reads bytes from r until a newline or the end of input, storing them in a Buffer of capacity limit.
// The newline is not included. Input that ends without a newline, even before any byte is read, ends the line,
// so a closed stream reads as an empty line. On any error the partially filled Buffer is destroyed.
func ReadLine(alloc Allocator, r io.Reader, limit int) (*Buffer, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid line limit %d", limit)
	}
	buf := alloc.Alloc(limit)
	data := buf.Bytes()
	var (
		one [1]byte
		n   int
	)
	defer func() {
		one[0] = 0
	}()
	for {
		m, err := r.Read(one[:])
		if m > 0 {
			if one[0] == '\n' {
				buf.Truncate(n)
				return buf, nil
			}
			if n == limit {
				buf.Destroy()
				return nil, fmt.Errorf("%w: more than %d bytes", ErrLineTooLong, limit)
			}
			data[n] = one[0]
			n++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				buf.Truncate(n)
				return buf, nil
			}
			buf.Destroy()
			return nil, err
		}
	}
}
