package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LessonEvent records a step in a lesson's life: drafted, draft failed,
// confirmed or closed.
type LessonEvent struct {
	ent.Schema
}

func (LessonEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LessonEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("lesson_id").
			Default("").
			Comment("Empty when drafting failed"),
		field.String("topic"),
		field.Enum("action").
			Values("drafted", "draft_failed", "confirmed", "closed"),
		field.Int("slide_count").
			Default(0),
		field.String("detail").
			Default("").
			Comment("Error text or free-form note"),
	}
}

func (LessonEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("lesson_id"),
	}
}
