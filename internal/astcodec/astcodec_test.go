package astcodec_test

import (
	"encoding/json"
	"testing"

	"fluentkit/internal/astcodec"
	"fluentkit/internal/parser"
	"fluentkit/internal/serializer"
)

func TestEncodeJSON(t *testing.T) {
	res, _ := parser.Parse("foo = Foo\n")
	got, err := json.Marshal(astcodec.Encode(res))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"type":"Resource","body":[{"type":"Message",` +
		`"id":{"type":"Identifier","name":"foo"},` +
		`"value":{"type":"Pattern","elements":[{"type":"TextElement","value":"Foo"}]},` +
		`"attributes":[],"comment":null}]}`
	if string(got) != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestEncodeJSONJunk(t *testing.T) {
	res, _ := parser.Parse("2bad\n")
	got, err := json.Marshal(astcodec.Encode(res))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded struct {
		Body []struct {
			Type        string
			Content     string
			Annotations []struct {
				Code string
			}
		}
	}
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.Body) != 1 || decoded.Body[0].Type != "Junk" || decoded.Body[0].Content != "2bad\n" {
		t.Fatalf("body = %+v", decoded.Body)
	}
	if len(decoded.Body[0].Annotations) != 1 || decoded.Body[0].Annotations[0].Code == "" {
		t.Fatalf("annotations = %+v", decoded.Body[0].Annotations)
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	src := `### Resource comment

# Greeting
hello = Hello, { $name }!
    .title = { -brand.gender ->
       *[masculine] His
        [feminine] Her
    }
-brand = Firefox
    .gender = masculine
count = { NUMBER($n, minimumFractionDigits: 2) } and { -brand(case: "gen") }
nested = { { "x" } } { 1.5 } { other.attr }
emails =
    { $n ->
        [0] none
       *[other] { $n } emails
    }
2bad
`
	res, errs := parser.Parse(src)
	if len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}
	data, err := astcodec.EncodeMsgpack(astcodec.Encode(res))
	if err != nil {
		t.Fatalf("EncodeMsgpack: %v", err)
	}
	node, err := astcodec.DecodeMsgpack(data)
	if err != nil {
		t.Fatalf("DecodeMsgpack: %v", err)
	}
	back, err := astcodec.Decode(node)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	opts := serializer.Options{WithJunk: true}
	want := serializer.Serialize(res, opts)
	if got := serializer.Serialize(back, opts); got != want {
		t.Fatalf("round trip mismatch:\n%s\nwant:\n%s", got, want)
	}
	if len(back.Junk()) != 1 || len(back.Junk()[0].Annotations) != 1 {
		t.Fatalf("junk annotations lost")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := astcodec.DecodeMsgpack([]byte{0xc1}); err == nil {
		t.Fatalf("expected error for invalid msgpack")
	}
	if _, err := astcodec.Decode(&astcodec.Node{Type: "Message"}); err == nil {
		t.Fatalf("expected error for non-resource root")
	}
	bad := &astcodec.Node{Type: "Resource", Fields: []astcodec.Field{
		{Name: "body", Value: []*astcodec.Node{{Type: "Bogus"}}},
	}}
	if _, err := astcodec.Decode(bad); err == nil {
		t.Fatalf("expected error for unknown entry")
	}
}
