package templates

import (
	"context"
	"sort"
)

// GenerationRecord is the slice of a generated-content row the analytics
// aggregation needs. TemplateID is empty for untemplated generations.
type GenerationRecord struct {
	TemplateID   string
	TemplateName string
	QualityScore *float64
}

// GenerationSource supplies generation records for analytics. Implemented by
// an adapter over the content repository.
type GenerationSource interface {
	GenerationRecords(ctx context.Context) ([]GenerationRecord, error)
}

// GenerationSourceFunc adapts a function to the GenerationSource interface.
type GenerationSourceFunc func(ctx context.Context) ([]GenerationRecord, error)

// GenerationRecords calls the wrapped function.
func (f GenerationSourceFunc) GenerationRecords(ctx context.Context) ([]GenerationRecord, error) {
	return f(ctx)
}

// UsageEntry summarizes one template's share of generated content.
type UsageEntry struct {
	TemplateID   string  `json:"templateId"`
	TemplateName string  `json:"templateName"`
	UsageCount   int     `json:"usageCount"`
	Percentage   float64 `json:"percentage"`
}

// Analytics reports template adoption and quality impact across all content.
type Analytics struct {
	TotalContentCount      int          `json:"totalContentCount"`
	TemplatedContentCount  int          `json:"templatedContentCount"`
	TemplateAdoptionRate   float64      `json:"templateAdoptionRate"`
	TemplatedAvgQuality    float64      `json:"templatedAvgQuality"`
	NonTemplatedAvgQuality float64      `json:"nonTemplatedAvgQuality"`
	QualityImprovement     float64      `json:"qualityImprovement"`
	TemplateUsage          []UsageEntry `json:"templateUsage"`
}

// ComputeAnalytics aggregates template usage across generation records.
func ComputeAnalytics(ctx context.Context, src GenerationSource) (Analytics, error) {
	records, err := src.GenerationRecords(ctx)
	if err != nil {
		return Analytics{}, err
	}

	out := Analytics{TotalContentCount: len(records), TemplateUsage: []UsageEntry{}}
	counts := map[string]*UsageEntry{}
	var order []string
	var templatedQualitySum, plainQualitySum float64
	var templatedQualityN, plainQualityN int

	for _, rec := range records {
		if rec.TemplateID == "" {
			if rec.QualityScore != nil {
				plainQualitySum += *rec.QualityScore
				plainQualityN++
			}
			continue
		}
		out.TemplatedContentCount++
		if rec.QualityScore != nil {
			templatedQualitySum += *rec.QualityScore
			templatedQualityN++
		}
		entry, ok := counts[rec.TemplateID]
		if !ok {
			name := rec.TemplateName
			if name == "" {
				name = "Unknown"
			}
			entry = &UsageEntry{TemplateID: rec.TemplateID, TemplateName: name}
			counts[rec.TemplateID] = entry
			order = append(order, rec.TemplateID)
		}
		entry.UsageCount++
	}

	if out.TotalContentCount > 0 {
		out.TemplateAdoptionRate = float64(out.TemplatedContentCount) / float64(out.TotalContentCount) * 100
		for _, id := range order {
			entry := counts[id]
			entry.Percentage = float64(entry.UsageCount) / float64(out.TotalContentCount) * 100
		}
	}
	if templatedQualityN > 0 {
		out.TemplatedAvgQuality = templatedQualitySum / float64(templatedQualityN)
	}
	if plainQualityN > 0 {
		out.NonTemplatedAvgQuality = plainQualitySum / float64(plainQualityN)
	}
	out.QualityImprovement = out.TemplatedAvgQuality - out.NonTemplatedAvgQuality

	for _, id := range order {
		out.TemplateUsage = append(out.TemplateUsage, *counts[id])
	}
	sort.SliceStable(out.TemplateUsage, func(i, j int) bool {
		return out.TemplateUsage[i].UsageCount > out.TemplateUsage[j].UsageCount
	})
	return out, nil
}
