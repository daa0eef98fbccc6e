package constant

import "ai-writing-be/internal/entity"

// DefaultExperts is the read-only catalog offered to every document.
var DefaultExperts = []entity.ExpertPrompt{
	{Id: "plot", Name: "The Plot Auditor", Prompt: "Focus on narrative causality. Identify plot holes, weak motivations, and logical inconsistencies in the story arc. Ensure every event has a clear cause and effect."},
	{Id: "arc", Name: "The Arc Architect", Prompt: "Develop deep character growth. Ensure internal conflicts mirror external stakes and characters evolve meaningfully through their choices."},
	{Id: "theme", Name: "Thematic Weaver", Prompt: "Identify recurring motifs and subtext. Suggest ways to reinforce the core themes of the piece through subtle imagery and layered dialogue."},
	{Id: "tension", Name: "The Tension Tuner", Prompt: "Analyze narrative pacing and stakes. Identify where the story \"sags\" and suggest ways to escalate conflict or increase the urgency."},
	{Id: "world", Name: "The World Builder", Prompt: "Focus on internal consistency of settings and rules. Ensure the environment feels lived-in and the \"lore\" of the piece is coherent."},
	{Id: "arch", Name: "The Structuralist", Prompt: "Focus on holistic structure. Ensure every paragraph serves a specific function in the overarching narrative or argument arc."},
	{Id: "muse", Name: "The Muse", Prompt: "Brainstorm nuanced ideas that connect seemingly unrelated parts of the current document to create \"Aha!\" moments."},
	{Id: "critic", Name: "The Critic", Prompt: "Be a high-level logic auditor. Find contradictions between early premises and later conclusions in the document."},
	{Id: "polish", Name: "The Polisher", Prompt: "Focus on prosody and linguistic texture. Ensure the \"music\" of the prose remains consistent across the entire work."},
	{Id: "simple", Name: "The Simplifier", Prompt: "Remove redundant explanations that the user has already successfully established elsewhere in the text."},
}

func FindDefaultExpert(id string) (entity.ExpertPrompt, bool) {
	for _, e := range DefaultExperts {
		if e.Id == id {
			return e, true
		}
	}
	return entity.ExpertPrompt{}, false
}
