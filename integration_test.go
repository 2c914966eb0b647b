package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/codefence/internal/iotest"
	"golang.org/x/net/html"
)

func TestIntegration_noBrokenLinks(t *testing.T) {
	t.Parallel()

	articles := map[string]string{
		"hello.md": "---\ntitle: Hello\n---\n\n" +
			"Read the [next post](../posts/world/) or [go home](../).\n\n" +
			"```go:title=main.go {3}\npackage main\n\nfunc main() {}\n```\n",
		"world.md": "---\ntitle: World\nslug: posts/world\n---\n\n" +
			"Back to [hello](../../hello/).\n\n" +
			"```shell-session noLineNumbers\n$ go run .\n```\n",
		"index.md": "---\nslug: /\n---\n\n# Posts\n\n" +
			"- [Hello](hello/)\n" +
			"- [World](posts/world/)\n",
	}

	tests := []struct {
		desc  string
		flags []string
	}{
		{desc: "default"},
		{desc: "embedded", flags: []string{"-embed"}},
		{desc: "no extras", flags: []string{"-line-numbers=false", "-copy-button=false"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			srcDir := t.TempDir()
			outDir := t.TempDir()
			args := append(tt.flags, "-debug", "-out="+outDir)
			for name, body := range articles {
				path := filepath.Join(srcDir, name)
				require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
				args = append(args, path)
			}

			exitCode := (&mainCmd{
				Stdout: iotest.Writer(t),
				Stderr: iotest.Writer(t),
			}).Run(args)
			require.Zero(t, exitCode)

			srv := httptest.NewServer(http.FileServer(http.FS(os.DirFS(outDir))))
			t.Cleanup(srv.Close)

			w := newURLWalker(t)
			w.Walk(srv.URL + "/")
			assert.Len(t, w.pages, 3, "all articles must be reachable")
		})
	}
}

// urlWalker visits all local pages for the generated website
// and verifies that none of the links or assets are broken.
type urlWalker struct {
	t      *testing.T
	host   string
	seen   map[string]struct{}
	pages  map[string]struct{}
	queue  []*url.URL
	client *http.Client
}

func newURLWalker(t *testing.T) *urlWalker {
	return &urlWalker{
		t:      t,
		seen:   make(map[string]struct{}),
		pages:  make(map[string]struct{}),
		client: http.DefaultClient,
	}
}

func (w *urlWalker) Walk(startPage string) {
	u, err := url.Parse(startPage)
	require.NoError(w.t, err)
	w.host = u.Host

	w.queue = append(w.queue, u)
	for len(w.queue) > 0 {
		var u *url.URL
		u, w.queue = w.queue[0], w.queue[1:]
		w.visit(u)
	}
}

func (w *urlWalker) visit(dest *url.URL) {
	if _, ok := w.seen[dest.String()]; ok {
		return
	}
	w.seen[dest.String()] = struct{}{}

	w.t.Log("Visiting", dest)
	res, err := w.client.Get(dest.String())
	if !assert.NoError(w.t, err, "error visiting %v", dest) {
		return
	}
	defer res.Body.Close()
	if !assert.Equal(w.t, 200, res.StatusCode, "bad response from %v: %v", dest, res.Status) {
		return
	}

	// Only pages link to other resources.
	if res.Header.Get("Content-Type") != "text/html; charset=utf-8" {
		return
	}
	w.pages[dest.Path] = struct{}{}

	tokz := html.NewTokenizer(res.Body)
	for {
		if tokz.Next() == html.ErrorToken {
			err := tokz.Err()
			if errors.Is(err, io.EOF) {
				err = nil
			}
			assert.NoError(w.t, err, "error reading %v", dest)
			break
		}

		tok := tokz.Token()
		if tok.Type != html.StartTagToken && tok.Type != html.SelfClosingTagToken {
			continue
		}

		var attrName string
		switch tok.Data {
		case "a", "link":
			attrName = "href"
		case "script":
			attrName = "src"
		default:
			continue
		}

		for _, attr := range tok.Attr {
			if attr.Key == attrName && len(attr.Val) > 0 {
				w.push(dest, attr.Val)
				break
			}
		}
	}
}

func (w *urlWalker) push(from *url.URL, href string) {
	u, err := url.Parse(href)
	if !assert.NoError(w.t, err, "bad href %q on page %v", href, from) {
		return
	}

	u = from.ResolveReference(u)
	u.Fragment = ""
	if u.Host == w.host {
		w.queue = append(w.queue, u)
	}
}
