package main

import (
	"fmt"

	"github.com/willem4130/thecareranchintake/pkg/intake/types"
)

// The intake form catalog. Page, section and question IDs are derived from
// their position so reseeding an instance leaves existing responses attached
// to the same questions.

const intakeFormKey = "care-ranch-intake"

type questionDef struct {
	text            string
	description     string
	qType           string
	required        bool
	options         interface{}
	validationRules interface{}
}

func buildSinglePageSection(pageIdx int, title string, description string, defs []questionDef) []types.FormSection {
	questions := make([]types.Question, len(defs))
	for i, def := range defs {
		questions[i] = types.Question{
			ID:              fmt.Sprintf("p%d-s1-q%d", pageIdx, i+1),
			Text:            def.text,
			Description:     def.description,
			Type:            def.qType,
			Required:        def.required,
			Order:           int32(i + 1),
			Options:         def.options,
			ValidationRules: def.validationRules,
		}
	}
	return []types.FormSection{
		{
			ID:          fmt.Sprintf("p%d-s1", pageIdx),
			Title:       title,
			Description: description,
			Order:       1,
			Questions:   questions,
		},
	}
}

func ratingRules() map[string]interface{} {
	return map[string]interface{}{"min": 0, "max": 10}
}

func scaleRules(minLabel string, maxLabel string) map[string]interface{} {
	return map[string]interface{}{
		"min":      1,
		"max":      5,
		"minLabel": minLabel,
		"maxLabel": maxLabel,
	}
}

func intakeFormCatalog() types.Form {
	return types.Form{
		Key:   intakeFormKey,
		Title: "The Care Ranch Leadership Retreat - Intake Form",
		Description: "Thank you for your commitment to join us for a 5-day immersive journey in Tubac, Arizona. " +
			"This intake form helps us understand how you think about yourself, how you approach challenges and opportunities, " +
			"and which areas of your personal leadership you most want to strengthen.",
		Status: types.FORM_STATUS_ACTIVE,
		Pages: []types.FormPage{
			welcomePage(),
			selfAwarenessPage(),
			relationshipsPage(),
			lifeAssessmentPage(),
			leadershipPage(),
			intentionPage(),
			healthPage(),
			movementPage(),
		},
	}
}

func welcomePage() types.FormPage {
	return types.FormPage{
		ID:          "p1",
		Title:       "Welcome",
		Description: "Thank you for your commitment to this transformative journey. This form helps us tailor the retreat to your unique needs and aspirations.",
		Order:       1,
		Sections: buildSinglePageSection(1, "Personal Details", "Basic information to help us connect with you.", []questionDef{
			{text: "Name", qType: types.QUESTION_TYPE_SHORT_TEXT, required: true},
			{text: "Date of birth", qType: types.QUESTION_TYPE_DATE, required: true},
			{text: "Address", qType: types.QUESTION_TYPE_SHORT_TEXT},
			{text: "Postal code", qType: types.QUESTION_TYPE_SHORT_TEXT},
			{text: "City", qType: types.QUESTION_TYPE_SHORT_TEXT, required: true},
			{text: "Country", qType: types.QUESTION_TYPE_SHORT_TEXT, required: true},
			{text: "Phone number", qType: types.QUESTION_TYPE_PHONE, required: true},
			{text: "Email address", qType: types.QUESTION_TYPE_EMAIL, required: true},
			{text: "General practitioner", qType: types.QUESTION_TYPE_SHORT_TEXT, description: "Name and contact information of your doctor"},
		}),
	}
}

func selfAwarenessPage() types.FormPage {
	texts := []string{
		"What prompted you to participate in this training?",
		"What is your current mood state? What three words best describe your current mood/state?",
		"Name at least two positive qualities you believe you have.",
		"What would you most like to see happen in your life?",
		"Which aspects of yourself (as you currently perceive them) do you like the least?",
		"Which aspects of yourself do you like the most?",
		"Which achievements are you proud of?",
		"What brings you intense joy?",
		"What do you feel ashamed of?",
		"What is your greatest fear?",
		"Which losses or painful experiences have been significant for you?",
		"What values or principles guide your most important life decisions?",
		"What do you believe others most misunderstand about you?",
		"Do you suffer from any addictions? If yes, which ones?",
		"Which important matters do you continuously postpone? Or which choices do you avoid?",
		"What is your biggest concern right now?",
	}
	defs := make([]questionDef, len(texts))
	for i, text := range texts {
		defs[i] = questionDef{text: text, qType: types.QUESTION_TYPE_LONG_TEXT}
	}
	return types.FormPage{
		ID:          "p2",
		Title:       "Training Goals & Self-Awareness",
		Description: "Let's explore your inner landscape - your motivations, strengths, and areas for growth.",
		Order:       2,
		Sections:    buildSinglePageSection(2, "Self-Reflection", "These questions help us understand how you perceive yourself and your journey.", defs),
	}
}

func relationshipsPage() types.FormPage {
	return types.FormPage{
		ID:          "p3",
		Title:       "Relationships & Family",
		Description: "Understanding your relational patterns helps us support your interpersonal growth.",
		Order:       3,
		Sections: buildSinglePageSection(3, "Relationships", "Your connections with family, partners, and friends.", []questionDef{
			{text: "Describe your relationship with your parents.", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you have siblings? If yes, what is your position in your family (oldest, middle, youngest child)? How is your relationship with them?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "In your parents' eyes, what kind of person are you?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Who has been a role model for you?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you have a partner?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "What do you appreciate in your current relationship or friendships?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "In your partner's eyes, what kind of person are you?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "In your friends' eyes, what kind of person are you?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Would you like to change anything in your current relationship or friendships?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you have a life purpose? If yes, what can you tell us about it?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "If you have a partner, what might be your shared life purpose?", qType: types.QUESTION_TYPE_LONG_TEXT},
		}),
	}
}

func lifeAssessmentPage() types.FormPage {
	topics := []string{
		"Upbringing",
		"Handling money/Finance",
		"Freedom within your relationship",
		"Intimacy",
		"Relationship with family",
		"Balance between private life and work",
		"Work",
		"Health",
	}
	defs := make([]questionDef, len(topics))
	for i, topic := range topics {
		defs[i] = questionDef{text: topic, qType: types.QUESTION_TYPE_RATING, validationRules: ratingRules()}
	}
	return types.FormPage{
		ID:          "p4",
		Title:       "Life Assessment",
		Description: "Rate different areas of your life to help us understand where you'd like to focus.",
		Order:       4,
		Sections:    buildSinglePageSection(4, "Self-Rating", "Please rate the following topics on a scale from 0 to 10, where 0 means very poor and 10 means excellent.", defs),
	}
}

func leadershipPage() types.FormPage {
	texts := []string{
		"How would you describe your leadership style?",
		"What kind of energy do you naturally bring into a group or team?",
		"Which aspects of your leadership feel aligned and effortless?",
		"Which aspects of your leadership feel forced or draining?",
		"When under pressure, what identity patterns (e.g., fixer, controller, pleaser, rebel, achiever) tend to take over?",
		"What feedback about your leadership has had the greatest impact on you, positive or negative?",
		"What parts of yourself do you tend to hide, suppress, or overemphasize in professional settings?",
		"Who are the leaders or mentors that most shaped your leadership identity, and what did you take from them?",
		"How do your personal values and your professional role align, or clash?",
	}
	defs := make([]questionDef, len(texts))
	for i, text := range texts {
		defs[i] = questionDef{text: text, qType: types.QUESTION_TYPE_LONG_TEXT}
	}
	return types.FormPage{
		ID:          "p5",
		Title:       "Leadership Identity",
		Description: "Explore your leadership style, strengths, and areas for development.",
		Order:       5,
		Sections:    buildSinglePageSection(5, "Leadership & Expression", "Understanding your leadership journey and aspirations.", defs),
	}
}

func intentionPage() types.FormPage {
	texts := []string{
		"What does \"leading from wholeness\" mean to you?",
		"What inner contradictions or identity tensions do you feel ready to explore or integrate during this retreat?",
		"What impact do you want your leadership to have?",
		"Name at least two things you'd like to work on during this training: personal and/or professional.",
	}
	defs := make([]questionDef, len(texts))
	for i, text := range texts {
		defs[i] = questionDef{text: text, qType: types.QUESTION_TYPE_LONG_TEXT}
	}
	return types.FormPage{
		ID:          "p6",
		Title:       "Intention & Purpose",
		Description: "Set your intentions for this transformative retreat experience.",
		Order:       6,
		Sections:    buildSinglePageSection(6, "Your Intentions", "What do you hope to explore and integrate during this retreat?", defs),
	}
}

func healthPage() types.FormPage {
	return types.FormPage{
		ID:          "p7",
		Title:       "Health & Wellness",
		Description: "Help us ensure your safety and optimize your experience during the retreat.",
		Order:       7,
		Sections: buildSinglePageSection(7, "Medical History", "This information is confidential and used only to ensure your safety during bodywork and equine sessions.", []questionDef{
			{text: "Do you use any medication? If yes, which?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you use homeopathic remedies, vitamins, minerals, etc.? If yes, which?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you have any health complaints?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Are these complaints acute or chronic?", qType: types.QUESTION_TYPE_SINGLE_CHOICE, options: []string{"Acute", "Chronic", "Both", "N/A"}},
			{text: "Are you currently under any medical treatment? If yes, please explain.", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you have mobility problems? If yes, please describe.", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Have you ever undergone surgery? If yes, which procedure and when?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Have you ever had an accident? If yes, what kind?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Have you ever had a serious fall?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Are you now, or have you ever been, in treatment at a mental health facility?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you have any blood disorders (e.g. anemia, hemophilia)?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you have high blood pressure?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you have stomach problems? If yes, which?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you have bowel problems?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Is your bowel function regular?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you have diabetes?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you have any heart problems?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you have any respiratory problems?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you suffer from (extreme) fatigue?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Are you allergic to anything? If yes, do you take medication for it? Which?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you fall asleep easily?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you sleep soundly (at least 6 hours uninterrupted)?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you wake up feeling rested?", qType: types.QUESTION_TYPE_YES_NO},
			{text: "Do you have any additional comments or information you'd like to share?", qType: types.QUESTION_TYPE_LONG_TEXT},
		}),
	}
}

func movementPage() types.FormPage {
	return types.FormPage{
		ID:          "p8",
		Title:       "Movement & Embodiment",
		Description: "Understanding your relationship with your body helps us tailor the bodywork sessions.",
		Order:       8,
		Sections: buildSinglePageSection(8, "Body Awareness", "These questions help us prepare for the Elemental Body Alignment System (EBAS) sessions.", []questionDef{
			{text: "What is your relationship with movement and your comfortability with it?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Do you have any challenges that might impact your participation in spinal and pelvic articulations, getting in and out of a chair/floor, or other joint challenges?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{
				text:            "How comfortable are you with hands-on learning/cuing?",
				description:     "1 = Very uncomfortable, 5 = Very comfortable",
				qType:           types.QUESTION_TYPE_SCALE,
				validationRules: scaleRules("Very uncomfortable", "Very comfortable"),
			},
			{
				text:            "How valuable do you feel a relationship with your body is to your growth and development as a leader?",
				description:     "1 = Not valuable, 5 = Extremely valuable",
				qType:           types.QUESTION_TYPE_SCALE,
				validationRules: scaleRules("Not valuable", "Extremely valuable"),
			},
			{text: "What does being in energetic, emotional and physical alignment mean to you?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{
				text:            "How important is it for you to be able to claim your space and radiate confidence in your posture?",
				description:     "1 = Not important, 5 = Extremely important",
				qType:           types.QUESTION_TYPE_SCALE,
				validationRules: scaleRules("Not important", "Extremely important"),
			},
			{text: "What does the phrase \"comfortable in your skin\" mean to you?", qType: types.QUESTION_TYPE_LONG_TEXT},
			{text: "Space for any extra information you wish to provide beforehand", qType: types.QUESTION_TYPE_LONG_TEXT},
		}),
	}
}
