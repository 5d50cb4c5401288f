package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringToBytes(t *testing.T) {
	assert.Equal(t, []byte("Hello World"), StringToBytes("Hello World"))
	assert.Empty(t, StringToBytes(""))
}

func TestBytesToString(t *testing.T) {
	assert.Equal(t, "Hello World", BytesToString([]byte("Hello World")))
	assert.Equal(t, "", BytesToString(nil))
}

func BenchmarkStringToBytes(b *testing.B) {
	s := "a path that is not so short, with some content"
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		_ = StringToBytes(s)
	}
}
