package query

import (
	"bufio"
	"io"
	"strconv"
)

// Render writes pixels as rows of space-separated intensity values.
func Render(w io.Writer, pixels []byte, rows, cols int) error {
	bw := bufio.NewWriter(w)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(pixels) {
				break
			}
			bw.WriteString(strconv.Itoa(int(pixels[i])))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
