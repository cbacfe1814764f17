package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/pathurl"
)

func TestRewriteReferences(t *testing.T) {
	doc := parseProject(t, `<PremiereData>
  <Clip pathurl="file://localhost/Volumes/Old/a%20b.mov"/>
  <MediaPath>/Volumes/Old/c.wav</MediaPath>
  <Clip pathurl="file://localhost/Volumes/Elsewhere/d.mov"/>
</PremiereData>`)
	schema := domain.DefaultProjectSchema()
	refs := ExtractReferences(doc, schema)
	require.Len(t, refs, 3)

	mapping := pathurl.BuildMapping([]domain.RelocationEntry{
		{OriginalPath: "/Volumes/Old/a b.mov", DestinationPath: "/Volumes/New/a b.mov"},
		{OriginalPath: "/Volumes/Old/c.wav", DestinationPath: "/Volumes/New/c.wav"},
	}, pathurl.NewNormalizer(domain.CaseModeNever))

	result := RewriteReferences(doc, refs, mapping)

	assert.Equal(t, 2, result.Updated)
	require.Len(t, result.Changes, 2)

	first := result.Changes[0]
	assert.Equal(t, "file://localhost/Volumes/Old/a%20b.mov", first.OldValue)
	assert.Equal(t, "file://localhost/Volumes/New/a%20b.mov", first.NewValue)
	assert.Equal(t, "/Volumes/New/a b.mov", first.NewPath)

	value, ok := doc.Attr(refs[0].Node, "pathurl")
	require.True(t, ok)
	assert.Equal(t, "file://localhost/Volumes/New/a%20b.mov", value)

	text, ok := doc.TextContent(refs[2].Node)
	require.True(t, ok)
	assert.Equal(t, "file://localhost/Volumes/New/c.wav", text)

	// Unmatched reference is untouched.
	value, _ = doc.Attr(refs[1].Node, "pathurl")
	assert.Equal(t, "file://localhost/Volumes/Elsewhere/d.mov", value)
}

func TestRewriteReferences_NoMatches(t *testing.T) {
	doc := parseProject(t, `<PremiereData><Clip pathurl="/a.mov"/></PremiereData>`)
	refs := ExtractReferences(doc, domain.DefaultProjectSchema())

	result := RewriteReferences(doc, refs, pathurl.BuildMapping(nil, pathurl.NewNormalizer(domain.CaseModeAuto)))

	assert.Zero(t, result.Updated)
	assert.Empty(t, result.Changes)
}

func TestRewriteReferences_StaleReferenceSkipped(t *testing.T) {
	doc := parseProject(t, `<PremiereData><Clip pathurl="/a.mov"/></PremiereData>`)
	stale := domain.PathReference{
		Node:        domain.NodeID(99),
		Locator:     domain.AttributeLocator("pathurl"),
		DecodedPath: "/a.mov",
	}
	mapping := pathurl.BuildMapping([]domain.RelocationEntry{
		{OriginalPath: "/a.mov", DestinationPath: "/b.mov"},
	}, pathurl.NewNormalizer(domain.CaseModeNever))

	result := RewriteReferences(doc, []domain.PathReference{stale}, mapping)

	assert.Zero(t, result.Updated)
}

func TestRewriteReferences_WindowsPaths(t *testing.T) {
	doc := parseProject(t, `<PremiereData><Clip pathurl="file://localhost/C:/Media/Clip.MOV"/></PremiereData>`)
	refs := ExtractReferences(doc, domain.DefaultProjectSchema())
	require.Len(t, refs, 1)
	assert.Equal(t, "C:/Media/Clip.MOV", refs[0].DecodedPath)

	mapping := pathurl.BuildMapping([]domain.RelocationEntry{
		{OriginalPath: `c:\media\clip.mov`, DestinationPath: `D:\Archive\Clip.MOV`},
	}, pathurl.NewNormalizer(domain.CaseModeAuto))

	result := RewriteReferences(doc, refs, mapping)

	require.Equal(t, 1, result.Updated)
	assert.Equal(t, "file://localhost/D:/Archive/Clip.MOV", result.Changes[0].NewValue)
}
