package stats

// Difficulty buckets a word by how often it has been missed.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyOf labels a record: hard at 3 or more misses, medium at 1 or
// more, easy otherwise.
func DifficultyOf(ws WordStats) Difficulty {
	switch {
	case ws.TimesWrong >= 3:
		return DifficultyHard
	case ws.TimesWrong >= 1:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// Summary aggregates a vocabulary's progress.
type Summary struct {
	Total        int
	Studied      int
	Mastered     int
	NeedPractice int
}

// Summarize counts progress over the given word ids. Mastered words have
// been studied and are not in the error set.
func Summarize(ids []string, store Store) Summary {
	s := Summary{Total: len(ids)}
	for _, id := range ids {
		ws, _ := store.Get(id)
		if ws.Studied() {
			s.Studied++
			if !ws.IsInErrorSet {
				s.Mastered++
			}
		}
		if ws.IsInErrorSet {
			s.NeedPractice++
		}
	}
	return s
}
