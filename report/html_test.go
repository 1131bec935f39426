package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abasis-ltd/gtfs.guru/notice"
	"github.com/abasis-ltd/gtfs.guru/validatorset"
)

func TestRenderHTMLGroupsBySeverityInOrder(t *testing.T) {
	r := Build(sampleNotices(), nil, nil, Options{}, "2026-01-01T00:00:00Z")
	html := r.RenderHTML()
	errIdx := strings.Index(html, ">ERROR<")
	warnIdx := strings.Index(html, ">WARNING<")
	require.NotEqual(t, -1, errIdx)
	require.NotEqual(t, -1, warnIdx)
	require.Less(t, errIdx, warnIdx, "errors should render before warnings")
}

func TestRenderHTMLEscapesFieldValues(t *testing.T) {
	c := notice.NewContainer()
	c.Add(notice.New("invalid_url", notice.SeverityError).
		With("filename", "routes.txt").With("fieldValue", `<script>alert(1)</script>`))
	r := Build(c, nil, nil, Options{}, "2026-01-01T00:00:00Z")
	html := r.RenderHTML()
	require.NotContains(t, html, "<script>alert(1)</script>")
	require.Contains(t, html, "&lt;script&gt;")
}

func TestRenderHTMLIncludesSystemErrors(t *testing.T) {
	r := Build(notice.NewContainer(), []validatorset.SystemError{{Validator: "boom", Error: "panic: x"}}, nil, Options{}, "2026-01-01T00:00:00Z")
	html := r.RenderHTML()
	require.Contains(t, html, "System errors")
	require.Contains(t, html, "boom")
}

func TestRenderHTMLOmitsSystemErrorsSectionWhenEmpty(t *testing.T) {
	r := Build(sampleNotices(), nil, nil, Options{}, "2026-01-01T00:00:00Z")
	require.NotContains(t, r.RenderHTML(), "System errors")
}
