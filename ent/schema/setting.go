package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Setting is a small persistent key-value pair, e.g. the stored API key.
type Setting struct {
	ent.Schema
}

func (Setting) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty().
			Unique().
			Immutable(),
		field.String("value").
			Sensitive(),
		field.Int64("updated_at").
			Comment("Unix milliseconds of the last write"),
	}
}
