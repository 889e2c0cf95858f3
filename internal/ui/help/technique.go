package help

import "github.com/zjrosen/breathe/internal/labels"

var technique = map[string]string{
	labels.English: `## Square breathing

Breathe along the four sides of a square, each side the same length:

1. **Inhale** through the nose
2. **Hold** with full lungs
3. **Exhale** slowly through the mouth
4. **Hold** with empty lungs

Start with 4 seconds per side. Move to 6, 8 or 10 once the rhythm feels easy.
A tone marks the start of every side.`,

	labels.Russian: `## Квадратное дыхание

Дышите вдоль четырёх сторон квадрата, каждая сторона одинаковой длины:

1. **Вдох** через нос
2. **Задержка** на полном вдохе
3. **Выдох** медленно через рот
4. **Задержка** на пустых лёгких

Начните с 4 секунд на сторону. Переходите к 6, 8 или 10, когда ритм станет лёгким.
Звуковой сигнал отмечает начало каждой стороны.`,
}

// Technique returns the markdown description of the exercise for lang.
func Technique(lang string) string {
	if md, ok := technique[lang]; ok {
		return md
	}
	return technique[labels.English]
}
