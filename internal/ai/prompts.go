package ai

import "fmt"

func blogDraftPrompt(topic, tone string) string {
	if tone == "" {
		tone = "friendly and practical"
	}
	return fmt.Sprintf(`You are writing for the blog of a residential and commercial
construction company. Write a complete blog post draft in Markdown.

Topic: %s
Tone: %s

Structure: a compelling title as an H1, a short introduction, 3-5 sections
with H2 headings, and a closing paragraph inviting readers to get in touch
for a consultation. Stay concrete: materials, timelines, cost ranges where
sensible. Do not invent statistics. Return ONLY the Markdown.`, topic, tone)
}

func projectDescriptionPrompt(title, notes string) string {
	return fmt.Sprintf(`You are writing portfolio copy for a construction company's
website. Turn the rough project notes below into a polished description of
2-3 paragraphs, highlighting scope, craftsmanship and outcome. Plain text,
no headings.

Project: %s

Notes:
%s`, title, notes)
}

func contactSummaryPrompt(name, subject, message string) string {
	return fmt.Sprintf(`Summarize this inbound inquiry to a construction company in
2-3 sentences for the project manager. Note the type of work requested, any
mentioned budget or timeline, and a suggested next step.

From: %s
Subject: %s

Message:
%s`, name, subject, message)
}
