package proto_test

import (
	"bufio"
	"strings"
	"testing"

	"i4.energy/across/sw42dagw/proto"
)

func TestSplitter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Simple command response",
			input:    "PON\r\nPower On\r\nSW42DA>",
			expected: []string{"PON", "Power On", "SW42DA>"},
		},
		{
			name:     "LF only line endings",
			input:    "STATUS\nFW Version: V1.22\nSW42DA>",
			expected: []string{"STATUS", "FW Version: V1.22", "SW42DA>"},
		},
		{
			name:     "Blank lines are kept as separators",
			input:    "Output     FromIn\r\n01         01\r\n\r\nDHCP     IP\r\n",
			expected: []string{"Output     FromIn", "01         01", "", "DHCP     IP"},
		},
		{
			name:     "Column padding is preserved",
			input:    "  Power   IR   Baud  \r\n",
			expected: []string{"  Power   IR   Baud  "},
		},
		{
			name:     "Prompt in front of the echo",
			input:    "SW42DA>STATUS\r\nPower On\r\nSW42DA>",
			expected: []string{"SW42DA>STATUS", "Power On", "SW42DA>"},
		},
		{
			name:     "Prompt followed by line ending",
			input:    "REBOOT\r\nSW42DA>\r\n",
			expected: []string{"REBOOT", "SW42DA>"},
		},
		// EOF scenarios - testing atEOF functionality
		{
			name:     "Incomplete line at EOF",
			input:    "STATUS\r\nPower   IR",
			expected: []string{"STATUS", "Power   IR"},
		},
		{
			name:     "Dangling CR at EOF",
			input:    "STATUS\r",
			expected: []string{"STATUS"},
		},
		{
			name:     "Partial prompt at EOF",
			input:    "STATUS\r\nSW42D",
			expected: []string{"STATUS", "SW42D"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tokens []string
			scanner := bufio.NewScanner(strings.NewReader(tt.input))
			scanner.Split(proto.Splitter)

			for scanner.Scan() {
				tokens = append(tokens, scanner.Text())
			}

			if err := scanner.Err(); err != nil {
				t.Fatalf("Scanner error: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d.\nExpected: %q\nGot: %q",
					len(tt.expected), len(tokens), tt.expected, tokens)
			}

			for i, expected := range tt.expected {
				if tokens[i] != expected {
					t.Errorf("Token %d: expected %q, got %q", i, expected, tokens[i])
				}
			}
		})
	}
}

func TestSplitterDanglingPrompt(t *testing.T) {
	// More data may follow the prompt, e.g. the echo of the next command.
	advance, token, err := proto.Splitter([]byte(proto.Prompt), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advance != 0 || token != nil {
		t.Errorf("expected request for more data, got advance=%d token=%q", advance, token)
	}

	advance, token, _ = proto.Splitter([]byte(proto.Prompt), true)
	if advance != len(proto.Prompt) || string(token) != proto.Prompt {
		t.Errorf("expected prompt token at EOF, got advance=%d token=%q", advance, token)
	}

	advance, token, _ = proto.Splitter([]byte(proto.Prompt+"STATUS\r\n"), false)
	if advance != len(proto.Prompt)+len("STATUS\r\n") || string(token) != proto.Prompt+"STATUS" {
		t.Errorf("expected echo line, got advance=%d token=%q", advance, token)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected proto.LineType
	}{
		{name: "Prompt", input: "SW42DA>", expected: proto.TypePrompt},
		{name: "Padded prompt", input: " SW42DA> ", expected: proto.TypePrompt},
		{name: "Empty line", input: "", expected: proto.TypeBlank},
		{name: "Whitespace line", input: "      ", expected: proto.TypeBlank},
		{name: "Header line", input: "Power   IR   Baud", expected: proto.TypeData},
		{name: "Command echo", input: "SW42DA>STATUS", expected: proto.TypeData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := proto.Classify(tt.input)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v for input %q", tt.expected, result, tt.input)
			}
		})
	}
}
