package ats

import (
	"testing"

	"parsume/internal/types"
)

const analyzerSample = "experience education skills summary"

func TestAnalyzeDeterministicScores(t *testing.T) {
	analyzer := NewAnalyzer(DefaultConfig())
	record := types.ResumeRecord{RawText: analyzerSample}

	analysis := analyzer.Analyze(record, "python")

	// Content: four section words hit the 30-point cap, plus the
	// short-length bonus.
	if analysis.ContentAnalysis.Score != 40 {
		t.Errorf("ContentAnalysis.Score = %d, want 40", analysis.ContentAnalysis.Score)
	}
	// Formatting: base 80 minus 20 for a single-line document.
	if analysis.FormattingAnalysis.Score != 60 {
		t.Errorf("FormattingAnalysis.Score = %d, want 60", analysis.FormattingAnalysis.Score)
	}
	// Keywords: python requested, absent from the resume.
	if analysis.KeywordAnalysis.Score != 0 {
		t.Errorf("KeywordAnalysis.Score = %d, want 0", analysis.KeywordAnalysis.Score)
	}
	// 0*0.4 + 40*0.4 + 60*0.2
	if analysis.OverallScore != 28 {
		t.Errorf("OverallScore = %d, want 28", analysis.OverallScore)
	}
	if analysis.PredictedPassRate != 24 {
		t.Errorf("PredictedPassRate = %d, want 24", analysis.PredictedPassRate)
	}
	if analysis.AnalysisMethod != "rule_based" {
		t.Errorf("AnalysisMethod = %q, want rule_based", analysis.AnalysisMethod)
	}
}

func TestAnalyzeEmptyJobDescription(t *testing.T) {
	analyzer := NewAnalyzer(DefaultConfig())
	record := types.ResumeRecord{RawText: analyzerSample}

	analysis := analyzer.Analyze(record, "")

	if !analysis.KeywordAnalysis.Skipped {
		t.Error("KeywordAnalysis.Skipped = false, want true for empty job description")
	}
	// (40*0.4 + 60*0.2) / 0.6
	if analysis.OverallScore != 47 {
		t.Errorf("OverallScore = %d, want 47 after reweighting", analysis.OverallScore)
	}
	if analysis.OverallScore < 0 || analysis.OverallScore > 100 {
		t.Errorf("OverallScore = %d out of range", analysis.OverallScore)
	}
}

func TestAnalyzeCustomWeights(t *testing.T) {
	analyzer := NewAnalyzer(Config{
		Weights:        Weights{Keyword: 0, Content: 1, Formatting: 0},
		FormattingBase: 80,
	})
	record := types.ResumeRecord{RawText: analyzerSample}

	analysis := analyzer.Analyze(record, "python")

	if analysis.OverallScore != analysis.ContentAnalysis.Score {
		t.Errorf("OverallScore = %d, want content score %d with content-only weights",
			analysis.OverallScore, analysis.ContentAnalysis.Score)
	}
}

func TestAnalyzeEmptyRecord(t *testing.T) {
	analyzer := NewAnalyzer(DefaultConfig())

	analysis := analyzer.Analyze(types.ResumeRecord{}, "python")

	if analysis.AnalysisMethod != "failed" {
		t.Errorf("AnalysisMethod = %q, want failed", analysis.AnalysisMethod)
	}
	if analysis.Summary != "Analysis failed" {
		t.Errorf("Summary = %q, want %q", analysis.Summary, "Analysis failed")
	}
	if analysis.OverallScore != 0 {
		t.Errorf("OverallScore = %d, want 0", analysis.OverallScore)
	}
}

func TestAnalyzeMatchedKeywords(t *testing.T) {
	analyzer := NewAnalyzer(DefaultConfig())
	record := types.ResumeRecord{
		RawText: "Skills: Python, Docker\nExperience\nEducation",
		Skills:  []string{"Python", "Docker"},
	}

	analysis := analyzer.Analyze(record, "python docker kubernetes")

	if len(analysis.KeywordAnalysis.MatchedKeywords) != 2 {
		t.Errorf("MatchedKeywords = %v, want python and docker", analysis.KeywordAnalysis.MatchedKeywords)
	}
	if len(analysis.KeywordAnalysis.MissingKeywords) != 1 {
		t.Errorf("MissingKeywords = %v, want kubernetes", analysis.KeywordAnalysis.MissingKeywords)
	}
	if analysis.KeywordAnalysis.Score != 67 {
		t.Errorf("KeywordAnalysis.Score = %d, want 67", analysis.KeywordAnalysis.Score)
	}
	if analysis.SkillsAnalysis.Score != 60 {
		t.Errorf("SkillsAnalysis.Score = %d, want 60 (90%% of keyword score)", analysis.SkillsAnalysis.Score)
	}
}
