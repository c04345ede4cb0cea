package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const lessonEventsTable = "lesson_events"

var lessonEventColumns = []string{
	"id", "sequence", "timestamp", "lesson_id", "topic", "action", "slide_count", "detail",
}

func (r *eventRepo) AppendLessonEvent(ctx context.Context, data LessonEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(lessonEventsTable).
		Columns(lessonEventColumns[1:]...).
		Values(seqNum, time.Now().UnixMilli(), data.LessonID, data.Topic, data.Action, data.SlideCount, data.Detail).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEventRecord, error) {
	sel := builder().Select(lessonEventColumns...).From(entsql.Table(lessonEventsTable))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var out []LessonEventRecord
	for rows.Next() {
		var (
			rec LessonEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.LessonID, &rec.Topic, &rec.Action, &rec.SlideCount, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
