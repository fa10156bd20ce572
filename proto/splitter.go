package proto

import (
	"bufio"
	"bytes"
)

// Splitter is used for tokenizing SW42DA responses. It uses the signature of
// bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// Lines end with LF, optionally preceded by CR. The prompt the device prints
// once a command is complete is not followed by a line ending. It is only
// returned at EOF, since the device also prints it directly in front of the
// echoed command ("SW42DA>STATUS") and a reader may see the two separately.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	// 1. Match standard line ending
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, bytes.TrimSuffix(data[0:i], []byte(CR)), nil
	}

	if atEOF {
		return len(data), bytes.TrimSuffix(data, []byte(CR)), nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter
