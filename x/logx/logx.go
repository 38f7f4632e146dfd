// Package logx prints short prefixed log lines ("Info: ...") to a swappable
// writer. It avoids fmt so it stays cheap on MCU builds.
package logx

import (
	"io"
	"os"
)

// Output receives every line. Firmware points it at a UART; tests at a buffer.
var Output io.Writer = os.Stderr

// Quiet suppresses Info lines; Warn and Error are always written.
var Quiet bool

func Info(msg string, kv ...string) {
	if Quiet {
		return
	}
	write("Info: ", msg, kv)
}

func Warn(msg string, kv ...string)  { write("Warn: ", msg, kv) }
func Error(msg string, kv ...string) { write("Error: ", msg, kv) }

// kv is read pairwise; a trailing odd key is printed bare.
func write(prefix, msg string, kv []string) {
	buf := make([]byte, 0, 64)
	buf = append(buf, prefix...)
	buf = append(buf, msg...)
	for i := 0; i < len(kv); i += 2 {
		buf = append(buf, ' ')
		buf = append(buf, kv[i]...)
		if i+1 < len(kv) {
			buf = append(buf, '=')
			buf = append(buf, kv[i+1]...)
		}
	}
	buf = append(buf, '\n')
	_, _ = Output.Write(buf)
}
