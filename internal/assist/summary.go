package assist

import (
	"context"
	"fmt"

	"github.com/timeliner-io/timeliner/internal/provider"
)

// Summary types accepted by Summarize.
const (
	SummaryTechnical = "technical"
	SummaryPIR       = "pir"
)

type technicalReport struct {
	TechnicalDetails struct {
		Incident        string `json:"incident"`
		Priority        string `json:"priority"`
		Description     string `json:"description"`
		IncidentManager string `json:"incidentManager"`
		TimelineScribe  string `json:"timelineScribe"`
		NBCUProduct     string `json:"nbcuProduct"`
	} `json:"technicalDetails"`
	SystemsAffected struct {
		ImpactedDevices  string `json:"impactedDevices"`
		ServicesImpacted string `json:"servicesImpacted"`
	} `json:"systemsAffected"`
	InvestigationSteps string `json:"investigationSteps"`
	RootCauseAnalysis  string `json:"rootCauseAnalysis"`
	ResolutionSteps    string `json:"resolutionSteps"`
	PreventionMeasures string `json:"preventionMeasures"`
	Communication      struct {
		TeamsEngaged string `json:"teamsEngaged"`
	} `json:"communication"`
}

type pirReport struct {
	ProblemStatement string `json:"problemStatement"`
	MajorTimestamps  struct {
		BusinessImpactStart  string `json:"businessImpactStart"`
		DetectionTime        string `json:"detectionTime"`
		LastReassignmentTime string `json:"lastReassignmentTime"`
		ActionTime           string `json:"actionTime"`
		MitigationTime       string `json:"mitigationTime"`
	} `json:"majorTimestamps"`
	ChangeDetails struct {
		CausedByChange   string `json:"causedByChange"`
		ResolvedByChange string `json:"resolvedByChange"`
	} `json:"changeDetails"`
	ConcernAndRecommendation string `json:"concernAndRecommendation"`
	ResolutionSummary        string `json:"resolutionSummary"`
}

const technicalSystemPrompt = `You are an expert incident analyst. Analyze the provided incident document and extract the required information to fill out a structured report.
You MUST fill in every field. If information for a field is not available in the document, you MUST write 'N/A'.

Respond with a single JSON object with exactly this structure:
{
  "technicalDetails": {
    "incident": "the incident number",
    "priority": "the priority of the incident",
    "description": "a short description of the issue",
    "incidentManager": "the name of the Incident Manager",
    "timelineScribe": "the name of the Timeline Scribe",
    "nbcuProduct": "the NBCU Product affected"
  },
  "systemsAffected": {
    "impactedDevices": "the devices impacted by the incident",
    "servicesImpacted": "the services or products impacted"
  },
  "investigationSteps": "a summary of the investigation steps taken",
  "rootCauseAnalysis": "an analysis of the root cause of the incident",
  "resolutionSteps": "the steps taken to resolve the incident, including which team took action",
  "preventionMeasures": "steps that should be taken to prevent this from happening in the future",
  "communication": {
    "teamsEngaged": "a list of all workgroups and individuals engaged during the incident"
  }
}`

const pirSystemPrompt = `You are an expert incident report analyst. Your task is to read the following incident timeline and generate a structured Post-Incident Review (PIR) report.

Analyze the document and extract the required information. You MUST answer every question and include every field. If a piece of information is not available in the document, you MUST indicate that with 'N/A'. Do not omit any fields.

Respond with a single JSON object with exactly this structure:
{
  "problemStatement": "a clear and concise statement of the problem that occurred",
  "majorTimestamps": {
    "businessImpactStart": "the time when the incident's impact on the business was first identified",
    "detectionTime": "the time when the incident was reported to the Incident Management Team",
    "lastReassignmentTime": "the time when the correct fixing agent or team was engaged",
    "actionTime": "the time when the fixing agent took the first step to mitigate or resolve the incident",
    "mitigationTime": "the time when the incident was mitigated and customer impact was resolved"
  },
  "changeDetails": {
    "causedByChange": "the change number or description that caused the incident, or 'N/A'",
    "resolvedByChange": "the change number or description that resolved the incident, or 'N/A'"
  },
  "concernAndRecommendation": "any concerns raised during the incident and recommendations for future prevention",
  "resolutionSummary": "a brief summary of what was done to resolve the incident"
}`

// Summarize analyzes an incident document and returns a formatted
// Technical Report or Post-Incident Review.
func (s *Service) Summarize(ctx context.Context, documentText, summaryType string) (string, error) {
	prompt := "Document:\n---\n" + documentText + "\n---"

	switch summaryType {
	case SummaryTechnical:
		out, err := s.complete(ctx, provider.Request{System: technicalSystemPrompt, Prompt: prompt})
		if err != nil {
			return "", fmt.Errorf("assist: technical summary: %w", err)
		}
		var report technicalReport
		if err := parseJSONOutput(out, &report); err != nil {
			return "", fmt.Errorf("assist: technical summary: %w", err)
		}
		return formatTechnical(&report), nil

	case SummaryPIR:
		out, err := s.complete(ctx, provider.Request{System: pirSystemPrompt, Prompt: prompt})
		if err != nil {
			return "", fmt.Errorf("assist: pir summary: %w", err)
		}
		var report pirReport
		if err := parseJSONOutput(out, &report); err != nil {
			return "", fmt.Errorf("assist: pir summary: %w", err)
		}
		return formatPIR(&report), nil

	default:
		return "", fmt.Errorf("assist: unknown summary type %q", summaryType)
	}
}

func formatTechnical(r *technicalReport) string {
	return "Technical Report\n\n" +
		"TECHNICAL DETAILS\n" +
		"Incident: " + r.TechnicalDetails.Incident + "\n" +
		"Priority: " + r.TechnicalDetails.Priority + "\n" +
		"Description: " + r.TechnicalDetails.Description + "\n" +
		"Incident Manager: " + r.TechnicalDetails.IncidentManager + "\n" +
		"Timeline Scribe: " + r.TechnicalDetails.TimelineScribe + "\n" +
		"NBCU Product: " + r.TechnicalDetails.NBCUProduct + "\n\n" +
		"SYSTEMS AFFECTED\n" +
		"Impacted Devices: " + r.SystemsAffected.ImpactedDevices + "\n" +
		"Services Impacted: " + r.SystemsAffected.ServicesImpacted + "\n\n" +
		"INVESTIGATION STEPS\n" + r.InvestigationSteps + "\n\n" +
		"ROOT CAUSE ANALYSIS\n" + r.RootCauseAnalysis + "\n\n" +
		"RESOLUTION STEPS\n" + r.ResolutionSteps + "\n\n" +
		"PREVENTION MEASURES\n" + r.PreventionMeasures + "\n\n" +
		"COMMUNICATION\n" +
		"Teams Engaged: " + r.Communication.TeamsEngaged + "\n"
}

func formatPIR(r *pirReport) string {
	return "Problem Statement:\n" + r.ProblemStatement + "\n\n" +
		"Major Timestamp:-\n" +
		"1. Start of Business impact(when the incident was identified) -->\n" + r.MajorTimestamps.BusinessImpactStart + "\n" +
		"2. Detected Time(when the incident was reported to Incident Management Team) -->\n" + r.MajorTimestamps.DetectionTime + "\n" +
		"3. Last reassignment Group time(when the fix agent was reached out) -->\n" + r.MajorTimestamps.LastReassignmentTime + "\n" +
		"4. Action time(when did the fix agent took first step to mitigate/resolve the incident) -->\n" + r.MajorTimestamps.ActionTime + "\n" +
		"5. Mitigated Time( When was the incident mitigated and Customer impact was resolved)-->\n" + r.MajorTimestamps.MitigationTime + "\n\n" +
		"Caused by Change:-\n" + r.ChangeDetails.CausedByChange + "\n\n" +
		"Resolved by Change:-\n" + r.ChangeDetails.ResolvedByChange + "\n\n" +
		"Concern/ Recommendation:-\n" + r.ConcernAndRecommendation + "\n\n" +
		"Resolution Summary:\n" + r.ResolutionSummary + "\n"
}
