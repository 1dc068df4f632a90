package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func mustParse(t *testing.T, c *Contract, body string) ldvalue.Value {
	t.Helper()
	v, err := c.Parse([]byte(body))
	require.NoError(t, err)
	return v
}

func violationsFor(c *Contract, body string) []Violation {
	var v ldvalue.Value
	if err := v.UnmarshalJSON([]byte(body)); err != nil {
		panic(err)
	}
	return c.Validate(v)
}

func constraintsOf(violations []Violation) []string {
	var out []string
	for _, v := range violations {
		out = append(out, v.Path+" "+v.Constraint)
	}
	return out
}

var testContract = &Contract{Name: "test", Root: obj(
	[]string{"name", "count"},
	map[string]*Schema{
		"name":  str(),
		"count": integer(),
		"score": num(),
		"tags":  arr(str()),
	},
)}

func TestValidValuePasses(t *testing.T) {
	v := mustParse(t, testContract, `{"name":"a","count":3,"score":1.5,"tags":["x","y"]}`)
	assert.Equal(t, "a", v.GetByKey("name").StringValue())
}

func TestUndeclaredFieldsAreIgnored(t *testing.T) {
	assert.Empty(t, violationsFor(testContract, `{"name":"a","count":3,"extra":{"anything":true}}`))
}

func TestMissingRequiredField(t *testing.T) {
	violations := violationsFor(testContract, `{"name":"a"}`)
	assert.Equal(t, []string{"$.count required"}, constraintsOf(violations))
}

func TestOptionalFieldMayBeAbsentButNotWrong(t *testing.T) {
	assert.Empty(t, violationsFor(testContract, `{"name":"a","count":1}`))

	violations := violationsFor(testContract, `{"name":"a","count":1,"score":"high"}`)
	assert.Equal(t, []string{"$.score type"}, constraintsOf(violations))
}

func TestNoNumericCoercion(t *testing.T) {
	violations := violationsFor(testContract, `{"name":"a","count":"3"}`)
	require.Len(t, violations, 1)
	assert.Equal(t, "$.count", violations[0].Path)
	assert.Equal(t, "type", violations[0].Constraint)
	assert.Contains(t, violations[0].Detail, "expected integer")
}

func TestIntegerRejectsFractionalNumbers(t *testing.T) {
	violations := violationsFor(testContract, `{"name":"a","count":3.5}`)
	assert.Equal(t, []string{"$.count type"}, constraintsOf(violations))
}

func TestAllViolationsAreCollected(t *testing.T) {
	violations := violationsFor(testContract, `{"count":"x","score":true,"tags":[1,"ok",2]}`)
	assert.ElementsMatch(t, []string{
		"$.name required",
		"$.count type",
		"$.score type",
		"$.tags[0] type",
		"$.tags[2] type",
	}, constraintsOf(violations))
}

func TestNullIsNotAValidObjectField(t *testing.T) {
	violations := violationsFor(testContract, `{"name":null,"count":1}`)
	assert.Equal(t, []string{"$.name type"}, constraintsOf(violations))
}

func TestNullableFieldAcceptsNull(t *testing.T) {
	c := &Contract{Name: "nullable", Root: obj(
		[]string{"note"},
		map[string]*Schema{"note": {Type: String, Nullable: true}},
	)}
	assert.Empty(t, violationsFor(c, `{"note":null}`))
	assert.Empty(t, violationsFor(c, `{"note":"hi"}`))
	assert.NotEmpty(t, violationsFor(c, `{"note":7}`))
}

func TestRootTypeMismatch(t *testing.T) {
	violations := violationsFor(testContract, `[1,2,3]`)
	require.Len(t, violations, 1)
	assert.Equal(t, "$", violations[0].Path)
	assert.Contains(t, violations[0].Detail, "expected object")
}

func TestEmailFormat(t *testing.T) {
	c := &Contract{Name: "email", Root: obj([]string{"email"},
		map[string]*Schema{"email": email()})}

	assert.Empty(t, violationsFor(c, `{"email":"emily.johnson@x.dummyjson.com"}`))

	violations := violationsFor(c, `{"email":"not-an-email"}`)
	assert.Equal(t, []string{"$.email format:email"}, constraintsOf(violations))
}

func TestURLFormat(t *testing.T) {
	c := &Contract{Name: "url", Root: obj([]string{"image"},
		map[string]*Schema{"image": link()})}

	assert.Empty(t, violationsFor(c, `{"image":"https://dummyjson.com/icon/emilys/128"}`))

	for _, bad := range []string{"", "not a url", "/relative/path"} {
		violations := c.Validate(ldvalue.ObjectBuild().Set("image", ldvalue.String(bad)).Build())
		assert.Equal(t, []string{"$.image format:url"}, constraintsOf(violations), "value %q", bad)
	}
}

func TestDateTimeFormat(t *testing.T) {
	c := &Contract{Name: "ts", Root: obj([]string{"deletedOn"},
		map[string]*Schema{"deletedOn": dateTime()})}

	assert.Empty(t, violationsFor(c, `{"deletedOn":"2024-06-10T12:42:04.000Z"}`))

	violations := violationsFor(c, `{"deletedOn":"June 10th"}`)
	assert.Equal(t, []string{"$.deletedOn format:date-time"}, constraintsOf(violations))
}

func TestParseReturnsValidationError(t *testing.T) {
	_, err := testContract.Parse([]byte(`{"name":1}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "test", ve.Contract)
	assert.Len(t, ve.Violations, 2) // name has the wrong type, count is missing
	assert.Contains(t, ve.Error(), "$.name")
	assert.Contains(t, ve.Error(), "$.count")
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := testContract.Parse([]byte(`{"name":`))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Violations, 1)
	assert.Equal(t, "json", ve.Violations[0].Constraint)
}

func TestNestedArrayPaths(t *testing.T) {
	c := &Contract{Name: "nested", Root: obj([]string{"rows"},
		map[string]*Schema{"rows": arr(obj([]string{"id"},
			map[string]*Schema{"id": integer()}))})}

	violations := violationsFor(c, `{"rows":[{"id":1},{"id":"two"},{}]}`)
	assert.ElementsMatch(t, []string{
		"$.rows[1].id type",
		"$.rows[2].id required",
	}, constraintsOf(violations))
}
