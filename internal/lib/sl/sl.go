// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — упростить формирование структурированных полей лога,
// например, для передачи информации об ошибках и секретов конфигурации.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
// Удобно использовать в логировании для единообразного вывода ошибок.
//
// Пример:
//
//	log.Error("failed to decode callback", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret возвращает slog.Attr с замаскированным значением учётных данных.
// В лог попадают только первые несколько символов, чтобы можно было отличить
// тестовый ключ от боевого, не раскрывая сам ключ.
func Secret(key, value string) slog.Attr {
	const visible = 8
	masked := value
	if len(masked) > visible {
		masked = masked[:visible] + "..."
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
