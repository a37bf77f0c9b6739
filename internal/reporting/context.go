package reporting

import (
	"context"
	"maps"
	"time"
)

type reportingMetaContextKey struct{}

// ReportingMeta carries the tags and extras attached to error reports for the
// current request.
type ReportingMeta struct {
	tags      map[string]string
	extras    map[string]string
	startedAt time.Time
}

func emptyMeta() ReportingMeta {
	return ReportingMeta{
		tags:   make(map[string]string),
		extras: make(map[string]string),
	}
}

// clone returns a copy that can be modified without affecting meta stored in
// parent contexts.
func (m ReportingMeta) clone() ReportingMeta {
	return ReportingMeta{
		tags:      maps.Clone(m.tags),
		extras:    maps.Clone(m.extras),
		startedAt: m.startedAt,
	}
}

func MetaFromContext(ctx context.Context) ReportingMeta {
	meta, ok := ctx.Value(reportingMetaContextKey{}).(ReportingMeta)
	if !ok {
		return emptyMeta()
	}
	return meta.clone()
}

func addMetaToContext(ctx context.Context, meta ReportingMeta) context.Context {
	return context.WithValue(ctx, reportingMetaContextKey{}, meta)
}

func AddTagsToContext(ctx context.Context, tags map[string]string) context.Context {
	meta := MetaFromContext(ctx)
	maps.Copy(meta.tags, tags)
	return addMetaToContext(ctx, meta)
}

func AddExtrasToContext(ctx context.Context, extras map[string]string) context.Context {
	meta := MetaFromContext(ctx)
	maps.Copy(meta.extras, extras)
	return addMetaToContext(ctx, meta)
}

func setStartedAtInContext(ctx context.Context, startedAt time.Time) context.Context {
	meta := MetaFromContext(ctx)
	meta.startedAt = startedAt
	return addMetaToContext(ctx, meta)
}
