package xmlutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Shapes(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<INProfileResponse xmlns="urn:bureau">
	<CreditProfileHeader>
		<ReportDate>20230615</ReportDate>
		<ReportNumber version="2">  RPT-1  </ReportNumber>
	</CreditProfileHeader>
	<CAIS_Account>
		<CAIS_Account_DETAILS><Account_Number>A1</Account_Number></CAIS_Account_DETAILS>
		<CAIS_Account_DETAILS><Account_Number>A2</Account_Number></CAIS_Account_DETAILS>
	</CAIS_Account>
	<SCORE><BureauScore>742</BureauScore></SCORE>
	<Empty/>
	<!-- comment -->
</INProfileResponse>`

	tree, err := Parse([]byte(doc))
	require.NoError(t, err)

	root, ok := tree[RootElement].(Map)
	require.True(t, ok, "root should be a mapping")

	header, err := MapAt(root, Header)
	require.NoError(t, err)
	assert.Equal(t, "20230615", header.TextAt(ReportDate))
	assert.Equal(t, "RPT-1", header.TextAt(ReportNumber), "text is trimmed and attributes dropped")

	accounts, err := AsSequence(root[CAISAccount].(Map)[AccountDetails])
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "A1", accounts[0].TextAt(AccountNumber))
	assert.Equal(t, "A2", accounts[1].TextAt(AccountNumber))

	assert.Equal(t, "", root["Empty"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "only declaration", doc: `<?xml version="1.0"?>`},
		{name: "unclosed element", doc: `<INProfileResponse><SCORE>`},
		{name: "mismatched tags", doc: `<a><b></a></b>`},
		{name: "not xml", doc: `{"json": true}`},
		{name: "second root element", doc: `<INProfileResponse><A>1</A></INProfileResponse><Other/>`},
		{name: "text after root", doc: `<INProfileResponse><A>1</A></INProfileResponse>garbage`},
		{name: "text before root", doc: `garbage<INProfileResponse/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_TrailingWhitespaceAndComments(t *testing.T) {
	doc, err := Parse([]byte("<?xml version=\"1.0\"?>\n<INProfileResponse><A>1</A></INProfileResponse>\n<!-- exported -->\n"))
	require.NoError(t, err)
	assert.Equal(t, Map{"INProfileResponse": Map{"A": "1"}}, doc)
}

func TestParse_Latin1(t *testing.T) {
	// "Jos\xe9" is "José" in ISO-8859-1.
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><INProfileResponse><Name>Jos\xe9</Name></INProfileResponse>"

	tree, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "José", tree[RootElement].(Map).TextAt("Name"))
}

func TestAsSequence(t *testing.T) {
	single := Map{"Account_Number": "A1"}
	second := Map{"Account_Number": "A2"}

	tests := []struct {
		name    string
		node    any
		want    []Map
		wantErr bool
	}{
		{name: "absent", node: nil, want: nil},
		{name: "empty element", node: "", want: nil},
		{name: "single mapping", node: single, want: []Map{single}},
		{name: "list keeps order", node: []any{single, second}, want: []Map{single, second}},
		{name: "list skips empty elements", node: []any{single, "", second}, want: []Map{single, second}},
		{name: "text instead of mapping", node: "oops", wantErr: true},
		{name: "text inside list", node: []any{single, "oops"}, wantErr: true},
		{name: "unexpected type", node: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AsSequence(tt.node)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAsSequence_SingleEqualsOneElementList(t *testing.T) {
	m := Map{"Subscriber_Name": "Bank"}

	fromSingle, err := AsSequence(m)
	require.NoError(t, err)
	fromList, err := AsSequence([]any{m})
	require.NoError(t, err)

	assert.Equal(t, fromSingle, fromList)
}

func TestFirst(t *testing.T) {
	a := Map{"k": "a"}
	b := Map{"k": "b"}

	got, err := First([]any{a, b})
	require.NoError(t, err)
	assert.Equal(t, a, got)

	got, err = First(nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMapAt(t *testing.T) {
	tree := Map{
		"A": Map{
			"B":     Map{"C": "leaf"},
			"Text":  "value",
			"Blank": "",
			"List":  []any{Map{}, Map{}},
		},
	}

	got, err := MapAt(tree, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "leaf", got.TextAt("C"))

	got, err = MapAt(tree, "A", "Missing", "Deeper")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = MapAt(tree, "A", "Blank")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = MapAt(tree, "A", "Text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A/Text")

	_, err = MapAt(tree, "A", "List")
	assert.Error(t, err)

	got, err = MapAt(nil, "A")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestText(t *testing.T) {
	assert.Equal(t, "x", Text("x"))
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "", Text(Map{"a": "b"}))
	assert.Equal(t, "second", Text([]any{"", "second", "third"}))

	var m Map
	assert.Equal(t, "", m.TextAt("anything"))
}
