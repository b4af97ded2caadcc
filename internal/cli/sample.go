package cli

import "yuwelongo/internal/domain"

// sampleLevels is the demo catalog served when neither the API nor Postgres is configured.
func sampleLevels() []domain.Level {
	return []domain.Level{
		{ID: 1, Name: "Naturaleza", Order: 1, Description: "Palabras del territorio", Status: domain.LevelActive},
		{ID: 2, Name: "Cielo", Order: 2, Description: "El sol, la luna y las estrellas", Status: domain.LevelActive},
		{ID: 3, Name: "Familia", Order: 3, Description: "Próximamente", Status: domain.LevelUpcoming},
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            1,
			LevelID:       1,
			XP:            10,
			Prompt:        "¿Cómo se dice 'agua' en Nasa Yuwe?",
			Options:       [4]string{"yu'", "kiwe", "sek", "a'te"},
			CorrectAnswer: "yu'",
		},
		{
			ID:            2,
			LevelID:       1,
			XP:            10,
			Prompt:        "¿Cómo se dice 'territorio' en Nasa Yuwe?",
			Options:       [4]string{"sek", "kiwe", "yu'", "nasa"},
			CorrectAnswer: "kiwe",
		},
		{
			ID:            3,
			LevelID:       1,
			XP:            5,
			Prompt:        "Los nasa son 'gente': nasa",
			Options:       [4]string{"nasa", "kiwe", "a'te", "sek"},
			CorrectAnswer: "nasa",
		},
		{
			ID:            4,
			LevelID:       2,
			XP:            15,
			Prompt:        "¿Cómo se dice 'sol' en Nasa Yuwe?",
			Options:       [4]string{"a'te", "sek", "yu'", "kiwe"},
			CorrectAnswer: "sek",
		},
		{
			ID:            5,
			LevelID:       2,
			XP:            15,
			Prompt:        "¿Cómo se dice 'luna' en Nasa Yuwe?",
			Options:       [4]string{"sek", "nasa", "a'te", "yu'"},
			CorrectAnswer: "a'te",
		},
	}
}

func sampleCategories() []domain.Category {
	return []domain.Category{
		{ID: 1, Name: "Naturaleza", Description: "Agua, tierra y territorio"},
		{ID: 2, Name: "Cielo", Description: "El sol y la luna"},
		{ID: 3, Name: "Comunidad", Description: "Las personas"},
	}
}

func sampleWords() []domain.Word {
	return []domain.Word{
		{ID: 1, Nasa: "yu'", Translation: "agua", CategoryID: 1},
		{ID: 2, Nasa: "kiwe", Translation: "territorio", CategoryID: 1, Example: "Kiwe the'j"},
		{ID: 3, Nasa: "sek", Translation: "sol", CategoryID: 2},
		{ID: 4, Nasa: "a'te", Translation: "luna", CategoryID: 2},
		{ID: 5, Nasa: "nasa", Translation: "gente", CategoryID: 3},
	}
}
