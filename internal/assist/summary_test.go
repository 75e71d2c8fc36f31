package assist

import (
	"context"
	"strings"
	"testing"
)

const technicalJSON = `{
  "technicalDetails": {
    "incident": "INC0012345",
    "priority": "P1",
    "description": "checkout latency",
    "incidentManager": "A. Manager",
    "timelineScribe": "B. Scribe",
    "nbcuProduct": "Peacock"
  },
  "systemsAffected": {
    "impactedDevices": "Web",
    "servicesImpacted": "Checkout"
  },
  "investigationSteps": "Checked dashboards.",
  "rootCauseAnalysis": "Bad deploy.",
  "resolutionSteps": "Rolled back.",
  "preventionMeasures": "Canary releases.",
  "communication": {
    "teamsEngaged": "Team Falcon, Network Ops"
  }
}`

func TestSummarizeTechnical(t *testing.T) {
	fake := &fakeProvider{responses: []string{technicalJSON}}
	s := New(fake, nil)

	got, err := s.Summarize(context.Background(), "the document", SummaryTechnical)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if !strings.HasPrefix(got, "Technical Report\n\nTECHNICAL DETAILS\nIncident: INC0012345\n") {
		t.Errorf("header wrong:\n%s", got)
	}
	for _, want := range []string{
		"Priority: P1\n",
		"NBCU Product: Peacock\n",
		"SYSTEMS AFFECTED\nImpacted Devices: Web\nServices Impacted: Checkout\n",
		"INVESTIGATION STEPS\nChecked dashboards.\n",
		"ROOT CAUSE ANALYSIS\nBad deploy.\n",
		"RESOLUTION STEPS\nRolled back.\n",
		"PREVENTION MEASURES\nCanary releases.\n",
		"COMMUNICATION\nTeams Engaged: Team Falcon, Network Ops\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q", want)
		}
	}

	if !strings.Contains(fake.requests[0].Prompt, "the document") {
		t.Error("document not sent to provider")
	}
}

const pirJSON = `{
  "problemStatement": "Checkout failed for web users.",
  "majorTimestamps": {
    "businessImpactStart": "09:00 UTC",
    "detectionTime": "09:05 UTC",
    "lastReassignmentTime": "09:20 UTC",
    "actionTime": "09:25 UTC",
    "mitigationTime": "09:40 UTC"
  },
  "changeDetails": {
    "causedByChange": "CHG0011111",
    "resolvedByChange": "N/A"
  },
  "concernAndRecommendation": "Add canary checks.",
  "resolutionSummary": "Rolled back the deploy."
}`

func TestSummarizePIR(t *testing.T) {
	fake := &fakeProvider{responses: []string{pirJSON}}
	s := New(fake, nil)

	got, err := s.Summarize(context.Background(), "doc", SummaryPIR)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	for _, want := range []string{
		"Problem Statement:\nCheckout failed for web users.\n",
		"Major Timestamp:-\n",
		"1. Start of Business impact(when the incident was identified) -->\n09:00 UTC\n",
		"5. Mitigated Time( When was the incident mitigated and Customer impact was resolved)-->\n09:40 UTC\n",
		"Caused by Change:-\nCHG0011111\n",
		"Resolved by Change:-\nN/A\n",
		"Concern/ Recommendation:-\nAdd canary checks.\n",
		"Resolution Summary:\nRolled back the deploy.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestSummarizeUnknownType(t *testing.T) {
	s := New(&fakeProvider{}, nil)
	if _, err := s.Summarize(context.Background(), "doc", "weekly"); err == nil {
		t.Fatal("expected error for unknown summary type")
	}
}

func TestSummarizeMalformedResponse(t *testing.T) {
	fake := &fakeProvider{responses: []string{"sorry, I cannot do that"}}
	s := New(fake, nil)
	if _, err := s.Summarize(context.Background(), "doc", SummaryTechnical); err == nil {
		t.Fatal("expected error for malformed response")
	}
}
