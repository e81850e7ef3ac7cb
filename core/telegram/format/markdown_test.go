package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeMarkdownV1(t *testing.T) {
	out, err := EscapeMarkdown("mac_and_cheese *best* [v2] `x`", MarkdownV1)
	require.NoError(t, err)
	assert.Equal(t, "mac\\_and\\_cheese \\*best\\* \\[v2] \\`x\\`", out)
}

func TestEscapeMarkdownV2(t *testing.T) {
	out, err := EscapeMarkdown("1.5 cups (flour)!", MarkdownV2)
	require.NoError(t, err)
	assert.Equal(t, "1\\.5 cups \\(flour\\)\\!", out)
}

func TestEscapeMarkdownUnsupported(t *testing.T) {
	_, err := EscapeMarkdown("x", 3)
	assert.Error(t, err)
}

func TestMDLeavesPlainText(t *testing.T) {
	assert.Equal(t, "Air Fryer Salmon", MD("Air Fryer Salmon"))
}

func TestMDBold(t *testing.T) {
	assert.Equal(t, "*Air Fryer Salmon*", MDBold("Air Fryer Salmon"))
	assert.Equal(t, "*2*\\**2=4*", MDBold("2*2=4"))
	assert.Equal(t, "\\**wings*\\*", MDBold("*wings*"))
	assert.Equal(t, "*Air_Fryer [best] `x`*", MDBold("Air_Fryer [best] `x`"))
	assert.Empty(t, MDBold(""))
}
