package device_test

import (
	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/sw42dagw/device"
)

type MockSequenceBuilder struct {
	dialer    *device.MockDialer
	transport *device.MockTransport
	calls     []any
}

func NewMockSequence(dialer *device.MockDialer, transport *device.MockTransport) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		dialer:    dialer,
		transport: transport,
		calls:     []any{},
	}
}

// Open expects a dial followed by arming the idle timeout.
func (b *MockSequenceBuilder) Open(idle any) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.dialer.EXPECT().Dial(gomock.Any()).Return(b.transport, nil),
		b.transport.EXPECT().SetReadTimeout(idle).Return(nil),
	)
	return b
}

func (b *MockSequenceBuilder) Command(cmd string) *MockSequenceBuilder {
	wire := []byte(cmd + "\n")
	b.calls = append(b.calls,
		b.transport.EXPECT().Write(wire).Return(len(wire), nil),
	)
	return b
}

// Reply expects one Read returning resp.
func (b *MockSequenceBuilder) Reply(resp string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, resp), nil
		}),
	)
	return b
}

// Idle expects one Read that times out without data.
func (b *MockSequenceBuilder) Idle() *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Read(gomock.Any()).Return(0, nil),
	)
	return b
}

func (b *MockSequenceBuilder) Close() *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Close().Return(nil),
	)
	return b
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}
