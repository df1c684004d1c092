package parsex

import (
	"context"
	"errors"
	"testing"
)

func TestDescribeImageRemoteFailure(t *testing.T) {
	describer := &fakeDescriber{err: errors.New("boom")}

	desc := DescribeImage(context.Background(), describer, onePxPNG)

	if desc.Description != defaultDescription {
		t.Errorf("description = %q", desc.Description)
	}
	if desc.Metadata["type"] != defaultImageType {
		t.Errorf("metadata type = %v", desc.Metadata["type"])
	}
	if desc.Metadata["dimensions"] != "1x1" {
		t.Errorf("dimensions = %v", desc.Metadata["dimensions"])
	}
}

func TestDescribeImageMalformedReply(t *testing.T) {
	for _, reply := range []string{"not json at all", `"just a string"`, `[1,2,3]`} {
		desc := DescribeImage(context.Background(), &fakeDescriber{reply: reply}, onePxPNG)

		if desc.Description != defaultDescription {
			t.Errorf("reply %q: description = %q", reply, desc.Description)
		}
		if desc.Metadata["type"] != defaultImageType {
			t.Errorf("reply %q: metadata type = %v", reply, desc.Metadata["type"])
		}
	}
}

func TestDescribeImageInjectsMetadata(t *testing.T) {
	// Well-formed reply without a metadata key gets an injected one
	// carrying the locally measured dimensions.
	describer := &fakeDescriber{reply: `{"description":"a chart"}`}

	desc := DescribeImage(context.Background(), describer, onePxPNG)

	if desc.Description != "a chart" {
		t.Errorf("description = %q", desc.Description)
	}
	if desc.Metadata == nil {
		t.Fatal("metadata not injected")
	}
	if desc.Metadata["dimensions"] != "1x1" {
		t.Errorf("dimensions = %v", desc.Metadata["dimensions"])
	}
}

func TestDescribeImageKeepsRemoteDimensions(t *testing.T) {
	describer := &fakeDescriber{reply: `{"description":"a chart","metadata":{"type":"chart","dimensions":"640x480"}}`}

	desc := DescribeImage(context.Background(), describer, onePxPNG)

	if desc.Metadata["dimensions"] != "640x480" {
		t.Errorf("dimensions = %v, want remote value kept", desc.Metadata["dimensions"])
	}
	if desc.Metadata["type"] != "chart" {
		t.Errorf("type = %v", desc.Metadata["type"])
	}
}

func TestDescribeImageUndecodableBytes(t *testing.T) {
	// Not an image: no dimensions available, but the contract still holds.
	describer := &fakeDescriber{err: errors.New("boom")}

	desc := DescribeImage(context.Background(), describer, "bm90IGFuIGltYWdl")

	if desc.Description != defaultDescription {
		t.Errorf("description = %q", desc.Description)
	}
	if desc.Metadata["type"] != defaultImageType {
		t.Errorf("metadata type = %v", desc.Metadata["type"])
	}
	if _, ok := desc.Metadata["dimensions"]; ok {
		t.Error("dimensions should be absent when decode fails")
	}
}

func TestParseDescriptionReply(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"object", `{"description":"d"}`, true},
		{"empty object", `{}`, true},
		{"array", `[]`, false},
		{"string", `"hi"`, false},
		{"garbage", `{{{`, false},
	}

	for _, tt := range tests {
		if _, ok := parseDescriptionReply(tt.raw); ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}

func TestDecodeDimensionsDataURL(t *testing.T) {
	dims, ok := decodeDimensions("data:image/png;base64," + onePxPNG)
	if !ok || dims != "1x1" {
		t.Errorf("dims = %q, ok = %v", dims, ok)
	}
}
