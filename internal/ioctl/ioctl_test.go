package ioctl

import "testing"

func TestCommandString(t *testing.T) {
	for _, test := range []struct {
		command Command
		want    string
	}{
		{0x4600, "ioctl (0 bytes) 0x4600"},
		{Command(Read)<<30 | 160<<16 | 0x4600, "ioctl read  (160 bytes) 0x4600"},
		{Command(Write)<<30 | 4<<16 | 0x4611, "ioctl write (4 bytes) 0x4611"},
	} {
		if v := test.command.String(); v != test.want {
			t.Errorf("expected %q, got %q", test.want, v)
		}
	}
}
