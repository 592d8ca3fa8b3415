package opts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferSinkReset(t *testing.T) {
	sink := &BufferSink{}
	sink.Print("a")
	sink.Error("b")
	assert.Equal(t, []string{"a"}, sink.Lines)
	assert.Equal(t, []string{"b"}, sink.Errors)

	sink.Reset()
	assert.Empty(t, sink.Lines)
	assert.Empty(t, sink.Errors)
}

func TestWriterSinkToleratesNilWriters(t *testing.T) {
	var out bytes.Buffer
	sink := WriterSink{Out: &out}
	assert.NotPanics(t, func() {
		sink.Print("line")
		sink.Error("ignored")
	})
	assert.Equal(t, "line\n", out.String())
}
