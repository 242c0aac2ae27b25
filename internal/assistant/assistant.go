// Package assistant answers common medication questions with curated
// guidance. It matches on keywords rather than calling out to a model, so
// replies are instant and work offline.
package assistant

import "strings"

const Welcome = "Hello! I'm your medication assistant. I can help you with medication information, side effects, and reminders. How can I assist you today?"

const fallback = "I understand you're asking about medications. For accurate medical advice, always consult with your healthcare provider. Is there anything else I can help with regarding your medication schedule or general information?"

type rule struct {
	keyword string
	reply   string
}

// Ordered: the first matching keyword wins.
var rules = []rule{
	{"side effect", "Common side effects can include nausea, headache, or dizziness. However, I recommend consulting your doctor for specific medication side effects."},
	{"dosage", "Dosage depends on the specific medication and your medical condition. Always follow your doctor's prescription and read the medication label carefully."},
	{"interaction", "Medication interactions can be serious. Please consult with your pharmacist or doctor about potential interactions with other medications you're taking."},
	{"reminder", "I can help you set reminders! Desktop notifications fire at each scheduled medication time, within a couple of minutes of the dose."},
	{"storage", "Most medications should be stored in a cool, dry place away from direct sunlight. Some may require refrigeration - check the label."},
	{"missed dose", "If you miss a dose, take it as soon as you remember. If it's close to the next dose, skip the missed one. Don't double dose unless advised by your doctor."},
	{"blood pressure", "For blood pressure medications like Lisinopril, take them at the same time each day and monitor your blood pressure regularly."},
	{"diabetes", "For diabetes medications like Metformin, take with meals to reduce stomach upset and monitor your blood sugar levels."},
	{"cholesterol", "For cholesterol medications like Atorvastatin, take in the evening as cholesterol production is highest at night."},
}

// Reply returns the canned answer for the first keyword found in the
// question, or a general disclaimer when nothing matches.
func Reply(question string) string {
	lowered := strings.ToLower(question)
	for _, r := range rules {
		if strings.Contains(lowered, r.keyword) {
			return r.reply
		}
	}
	return fallback
}
