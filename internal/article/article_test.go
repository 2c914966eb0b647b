package article

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/codefence/internal/codeblock"
)

// recordingRenderer records the requests it receives
// and renders them as a marker.
type recordingRenderer struct {
	requests []*codeblock.Request
}

func (r *recordingRenderer) RenderCode(req *codeblock.Request) string {
	r.requests = append(r.requests, req)
	return fmt.Sprintf("<code-block-%d/>", len(r.requests))
}

func TestParser_Parse_frontmatter(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"---",
		"title: Hello, world",
		"tags: [csharp, dotnet]",
		"date: 2021-03-04",
		"dateModified: 2021-04-05",
		"author: Someone",
		"isPrivate: true",
		"slug: /posts/hello",
		"---",
		"",
		"Some text here.",
		"",
	}, "\n")

	got, err := new(Parser).Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, Meta{
		Title:        "Hello, world",
		Tags:         []string{"csharp", "dotnet"},
		Date:         time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
		DateModified: time.Date(2021, 4, 5, 0, 0, 0, 0, time.UTC),
		Author:       "Someone",
		Private:      true,
		Slug:         "/posts/hello",
	}, got.Meta)
	assert.Equal(t, "<p>Some text here.</p>\n", string(got.Body))
	assert.Equal(t, 3, got.WordCount)
	assert.Equal(t, 1, got.TimeToRead)
}

func TestParser_Parse_noFrontmatter(t *testing.T) {
	t.Parallel()

	got, err := new(Parser).Parse([]byte("# Title\n\nBody.\n"))
	require.NoError(t, err)

	assert.Equal(t, Meta{}, got.Meta)
	assert.Contains(t, string(got.Body), `<h1 id="title">Title</h1>`)
	assert.Equal(t, 2, got.WordCount)
}

func TestParser_Parse_badFrontmatter(t *testing.T) {
	t.Parallel()

	_, err := new(Parser).Parse([]byte("---\ntitle: [unclosed\n---\nbody\n"))
	assert.ErrorContains(t, err, "parse frontmatter")
}

func TestParser_Parse_codeBlocks(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"Before.",
		"",
		"```csharp:title=Program.cs {2,4-6}",
		"using System;",
		"",
		"class Program {}",
		"```",
		"",
		"```",
		"plain",
		"```",
		"",
		"```js noLineNumbers",
		"a()",
		"",
		"```",
		"",
		"After.",
		"",
	}, "\n")

	var code recordingRenderer
	got, err := (&Parser{Code: &code}).Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []*codeblock.Request{
		{
			Code:      "using System;\n\nclass Program {}",
			ClassName: "language-csharp:title=Program.cs",
			Meta:      "{2,4-6}",
		},
		{
			Code: "plain",
		},
		{
			Code:          "a()\n",
			ClassName:     "language-js",
			Meta:          "noLineNumbers",
			NoLineNumbers: true,
		},
	}, code.requests)

	assert.Equal(t,
		"<p>Before.</p>\n<code-block-1/><code-block-2/><code-block-3/><p>After.</p>\n",
		string(got.Body))
	assert.Equal(t, 2, got.WordCount, "code should not count as words")
}

func TestParser_Parse_defaultCodeRendering(t *testing.T) {
	t.Parallel()

	got, err := new(Parser).Parse([]byte("```go\nx := 1\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, string(got.Body), `<pre><code class="language-go">x := 1`)
}

func TestTimeToRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, timeToRead(tt.words), "words=%d", tt.words)
	}
}
