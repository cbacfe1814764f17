package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

func TestValidateDocument_Valid(t *testing.T) {
	doc := parseProject(t, `<PremiereData><Clip pathurl="file://localhost/a.mov"/></PremiereData>`)

	assert.NoError(t, ValidateDocument(doc, domain.DefaultProjectSchema()))
}

func TestValidateDocument_AcceptedRoots(t *testing.T) {
	for _, root := range []string{"PremiereData", "xmeml", "Project"} {
		doc := parseProject(t, "<"+root+"/>")
		assert.NoError(t, ValidateDocument(doc, domain.DefaultProjectSchema()), root)
	}
}

func TestValidateDocument_Failures(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		contains string
	}{
		{
			name:     "unexpected root",
			xml:      `<Timeline/>`,
			contains: "unexpected root element: Timeline",
		},
		{
			name:     "markup in attribute path",
			xml:      `<PremiereData><Clip pathurl="/a/&lt;b&gt;.mov"/></PremiereData>`,
			contains: "invalid path format at <Clip @pathurl>",
		},
		{
			name:     "markup in text path",
			xml:      `<PremiereData><MediaPath>/a/&lt;b.wav</MediaPath></PremiereData>`,
			contains: "invalid path format at <MediaPath>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(parseProject(t, tt.xml), domain.DefaultProjectSchema())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateDocument_CollectsAllProblems(t *testing.T) {
	doc := parseProject(t, `<Timeline><Clip pathurl="&lt;x"/><Clip filepath="y&gt;"/></Timeline>`)

	err := ValidateDocument(doc, domain.DefaultProjectSchema())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 3)
}

func TestValidateDocument_IllegalCharacterAfterRewrite(t *testing.T) {
	doc := parseProject(t, `<PremiereData><Clip pathurl="/a.mov"/></PremiereData>`)
	var clip domain.NodeID
	doc.Elements(func(id domain.NodeID, n domain.Node) {
		if n.Name == "Clip" {
			clip = id
		}
	})
	require.True(t, doc.SetAttr(clip, "pathurl", "/a\x01.mov"))

	err := ValidateDocument(doc, domain.DefaultProjectSchema())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal character U+0001")
}

func TestValidateDocument_NoRoot(t *testing.T) {
	err := ValidateDocument(domain.NewProjectDocument(), domain.DefaultProjectSchema())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no root element")
}

func TestCheckPathValue(t *testing.T) {
	assert.Empty(t, checkPathValue("file://localhost/Volumes/A%20B/c.mov"))
	assert.Empty(t, checkPathValue("C:\\Media\\é.wav"))
	assert.Equal(t, "contains XML characters", checkPathValue("a>b"))
	assert.Equal(t, "contains invalid UTF-8", checkPathValue("a\xffb"))
	assert.Equal(t, "contains illegal character U+FFFE", checkPathValue("a\uFFFEb"))
}

func TestValidateRewrite_OnlyChangedValuesFail(t *testing.T) {
	doc := parseProject(t, `<PremiereData>
  <Clip pathurl="/a.mov"/>
  <Clip pathurl="/old/&lt;b&gt;.mov"/>
</PremiereData>`)
	refs := ExtractReferences(doc, domain.DefaultProjectSchema())
	require.Len(t, refs, 2)

	changes := []domain.PathChange{{Node: refs[0].Node, Locator: refs[0].Locator}}

	warnings, err := ValidateRewrite(doc, domain.DefaultProjectSchema(), changes)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "pre-existing invalid path format at <Clip @pathurl>")

	require.True(t, doc.SetAttr(refs[0].Node, "pathurl", "/a<.mov"))

	warnings, err = ValidateRewrite(doc, domain.DefaultProjectSchema(), changes)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 1)
	assert.Contains(t, verr.Messages[0], "contains XML characters")
	assert.Len(t, warnings, 1)
}

func TestValidateRewrite_TextLocation(t *testing.T) {
	doc := parseProject(t, `<xmeml><pathurl>/a.mov</pathurl></xmeml>`)
	refs := ExtractReferences(doc, domain.DefaultProjectSchema())
	require.Len(t, refs, 1)
	require.True(t, doc.SetText(refs[0].Node, "/a\x01.mov"))

	_, err := ValidateRewrite(doc, domain.DefaultProjectSchema(), []domain.PathChange{
		{Node: refs[0].Node, Locator: refs[0].Locator},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal character U+0001")
}

func TestValidateRewrite_StructuralProblemsAlwaysFail(t *testing.T) {
	doc := parseProject(t, `<Timeline><Clip pathurl="/a.mov"/></Timeline>`)

	warnings, err := ValidateRewrite(doc, domain.DefaultProjectSchema(), nil)

	assert.Empty(t, warnings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected root element: Timeline")
}
