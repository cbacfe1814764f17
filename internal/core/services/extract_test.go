package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prrelink/internal/adapters/driven/container"
	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// parseProject decodes an XML fixture with the real codec.
func parseProject(t *testing.T, xml string) *domain.ProjectDocument {
	t.Helper()
	doc, err := container.NewCodec(domain.CompressionPlainTextOnly).Decode([]byte(xml))
	require.NoError(t, err)
	return doc
}

func TestExtractReferences_Order(t *testing.T) {
	doc := parseProject(t, `<PremiereData>
  <Clip filepath="/one.mov" pathurl="file://localhost/two.mov"/>
  <MediaPath>/three.wav</MediaPath>
  <Still relativeurl="four.jpg"/>
</PremiereData>`)

	refs := ExtractReferences(doc, domain.DefaultProjectSchema())

	require.Len(t, refs, 4)

	// Attribute pass: document order, then table order within an element.
	assert.Equal(t, domain.AttributeLocator("pathurl"), refs[0].Locator)
	assert.Equal(t, "/two.mov", refs[0].DecodedPath)
	assert.Equal(t, domain.AttributeLocator("filepath"), refs[1].Locator)
	assert.Equal(t, "/one.mov", refs[1].DecodedPath)
	assert.Equal(t, "Still", refs[2].Element)
	assert.Equal(t, "/four.jpg", refs[2].DecodedPath)

	// Text pass follows.
	assert.Equal(t, domain.TextLocator(), refs[3].Locator)
	assert.Equal(t, "MediaPath", refs[3].Element)
	assert.Equal(t, "/three.wav", refs[3].RawValue)
}

func TestExtractReferences_AttributeWinsOverText(t *testing.T) {
	doc := parseProject(t, `<PremiereData><File pathurl="/a.mov">/b.mov</File></PremiereData>`)

	refs := ExtractReferences(doc, domain.DefaultProjectSchema())

	require.Len(t, refs, 1)
	assert.Equal(t, domain.AttributeLocator("pathurl"), refs[0].Locator)
}

func TestExtractReferences_TextOnlyForPureTextElements(t *testing.T) {
	doc := parseProject(t, `<PremiereData>
  <File ObjectRef="1"><Name>clip</Name></File>
  <pathurl>
    file://localhost/Volumes/Media/c.wav
  </pathurl>
</PremiereData>`)

	refs := ExtractReferences(doc, domain.DefaultProjectSchema())

	require.Len(t, refs, 1)
	assert.Equal(t, "pathurl", refs[0].Element)
	assert.Equal(t, "/Volumes/Media/c.wav", refs[0].DecodedPath)
	assert.Contains(t, refs[0].RawValue, "\n")
}

func TestExtractReferences_SkipsBlankAndPrefixed(t *testing.T) {
	doc := parseProject(t, `<PremiereData xmlns:x="urn:x">
  <Clip pathurl="" x:filepath="/ns.mov"/>
  <MediaPath>   </MediaPath>
  <Other>/not/a/path/location.mov</Other>
</PremiereData>`)

	refs := ExtractReferences(doc, domain.DefaultProjectSchema())

	assert.Empty(t, refs)
}

func TestExtractReferences_Malformed(t *testing.T) {
	doc := parseProject(t, `<PremiereData><Clip pathurl="file:///bad%ZZ.mov"/></PremiereData>`)

	refs := ExtractReferences(doc, domain.DefaultProjectSchema())

	require.Len(t, refs, 1)
	assert.True(t, refs[0].Malformed)
	assert.Equal(t, "file:///bad%ZZ.mov", refs[0].DecodedPath)
	assert.Equal(t, 1, countMalformed(refs))
}

func TestExtractReferences_EmptyDocument(t *testing.T) {
	refs := ExtractReferences(domain.NewProjectDocument(), domain.DefaultProjectSchema())

	assert.Empty(t, refs)
}
