package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := FromContext(WithPrinter(context.Background(), &buf))
		if p.Writer() != &buf {
			t.Error("Writer() should return the buffer passed to WithPrinter")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		if FromContext(context.Background()).Writer() != os.Stdout {
			t.Error("Writer() should default to os.Stdout")
		}
	})
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	p.Print("git clone ")
	p.Printf("%s %s", "https://review.example.com/demo", "demo")
	p.Println()

	if got := buf.String(); got != "git clone https://review.example.com/demo demo\n" {
		t.Errorf("output = %q", got)
	}
}

func TestPrinter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	err := p.JSON(map[string]string{"command": "git fetch ${url} && git checkout FETCH_HEAD"})
	if err != nil {
		t.Fatalf("JSON() = %v", err)
	}

	want := "{\n  \"command\": \"git fetch ${url} && git checkout FETCH_HEAD\"\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("JSON output = %q, want %q", got, want)
	}
}

func TestPrinter_JSONError(t *testing.T) {
	t.Parallel()

	p := New(&bytes.Buffer{})
	if err := p.JSON(make(chan int)); err == nil {
		t.Error("JSON(chan) = nil, want error")
	}
}
