package types

import "testing"

func testForm() Form {
	return Form{
		Key:    "f1",
		Status: FORM_STATUS_ACTIVE,
		Pages: []FormPage{
			{
				ID:    "p1",
				Order: 1,
				Sections: []FormSection{
					{ID: "s1", Order: 1, Questions: []Question{{ID: "q1"}, {ID: "q2"}}},
					{ID: "s2", Order: 2, Questions: []Question{{ID: "q3"}}},
				},
			},
			{
				ID:    "p2",
				Order: 2,
				Sections: []FormSection{
					{ID: "s3", Order: 1, Questions: []Question{{ID: "q4"}}},
				},
			},
		},
	}
}

func TestAllQuestions(t *testing.T) {
	form := testForm()
	questions := form.Pages[0].AllQuestions()
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	// section then question order
	expected := []string{"q1", "q2", "q3"}
	for i, question := range questions {
		if question.ID != expected[i] {
			t.Errorf("expected question %s at index %d, got %s", expected[i], i, question.ID)
		}
	}
}

func TestGetPageByOrder(t *testing.T) {
	form := testForm()

	page, ok := form.GetPageByOrder(2)
	if !ok || page.ID != "p2" {
		t.Errorf("expected page p2, got %+v (ok=%t)", page, ok)
	}

	if _, ok := form.GetPageByOrder(3); ok {
		t.Error("expected no page for order 3")
	}
}

func TestGetPageByID(t *testing.T) {
	form := testForm()

	page, ok := form.GetPageByID("p1")
	if !ok || page.Order != 1 {
		t.Errorf("expected page p1, got %+v (ok=%t)", page, ok)
	}

	if _, ok := form.GetPageByID("missing"); ok {
		t.Error("expected no page for unknown ID")
	}
}

func TestQuestionCount(t *testing.T) {
	form := testForm()
	if count := form.QuestionCount(); count != 4 {
		t.Errorf("expected 4 questions, got %d", count)
	}
}

func TestDraftStateClone(t *testing.T) {
	draft := DraftState{"q1": TextAnswer("a")}
	copied := draft.Clone()

	copied["q2"] = TextAnswer("b")
	if _, exists := draft["q2"]; exists {
		t.Error("expected the clone to be independent")
	}
}
