package rng

// Integer возвращает целое в [lo, hi). При пустом диапазоне возвращает lo, не расходуя генератор.
func (r *Rng) Integer(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(r.Next()%uint64(hi-lo))
}

// Float возвращает вещественное в [lo, hi).
func (r *Rng) Float(lo, hi float64) float64 {
	return lo + float64(r.Next())/float64(r.cfg.M)*(hi-lo)
}

// RandomPrintableString строит строку из символов с кодами в [32, 127).
func (r *Rng) RandomPrintableString(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = byte(r.Integer(32, 127))
	}
	return string(buf)
}

// PickRandom выбирает элемент списка. На пустом списке ok=false.
func PickRandom[T any](r *Rng, xs []T) (T, bool) {
	var zero T
	if len(xs) == 0 {
		return zero, false
	}
	return xs[r.Integer(0, len(xs))], true
}

// Shuffle - тасование Фишера-Йетса. Исходный срез не меняется.
func Shuffle[T any](r *Rng, xs []T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	// Последний шаг не тянет число: число вызовов Integer задает поток генератора в реплеях
	for i := 0; i < len(out)-1; i++ {
		j := r.Integer(i, len(out))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
