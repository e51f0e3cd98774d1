package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conduit/internal/entity"
	"conduit/internal/form"
)

func TestProblemListCollapsesWhenEmpty(t *testing.T) {
	assert.Equal(t, "span", ProblemList(nil).Tag)
	assert.Equal(t, "span", ProblemList([]form.Problem{}).Tag)

	node := ProblemList([]form.Problem{form.ServerError("email is taken")})
	assert.Equal(t, "ul", node.Tag)
	assert.True(t, node.ContainsText("email is taken"))
}

func TestErrorBannerCollapsesWhenEmpty(t *testing.T) {
	assert.Equal(t, "span", ErrorBanner(nil, struct{}{}).Tag)

	type dismiss struct{}
	node := ErrorBanner(entity.Messages("Request error"), dismiss{})
	assert.True(t, node.ContainsText("Request error"))

	// The banner's Ok button carries the dismiss message.
	require.NotEmpty(t, node.Children)
	ok := node.Children[len(node.Children)-1]
	assert.Equal(t, dismiss{}, ok.Msg)
}
