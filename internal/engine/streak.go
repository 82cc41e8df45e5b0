package engine

import "thoth/internal/storage"

// HistoryLimit bounds the rolling day-outcome history kept on the stat record.
const HistoryLimit = 10

// applyDayOutcome folds one sealed day into the streak fields: a success
// day extends the streak, a failure day resets it. MaxStreak never
// decreases.
func applyDayOutcome(st *storage.Stat, success bool, dateKey string) {
	if success {
		st.CurrentStreak++
		st.History = pushHistory(st.History, 1)
	} else {
		st.CurrentStreak = 0
		st.History = pushHistory(st.History, 0)
	}
	if st.CurrentStreak > st.MaxStreak {
		st.MaxStreak = st.CurrentStreak
	}
	st.LastSealedDate = dateKey
}

func pushHistory(history []int, outcome int) []int {
	history = append(history, outcome)
	if len(history) > HistoryLimit {
		history = history[len(history)-HistoryLimit:]
	}
	return history
}
