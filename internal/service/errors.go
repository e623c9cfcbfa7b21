package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("неверный пароль")
	ErrUnauthorized       = errors.New("требуется авторизация")
	ErrEmptyFile          = errors.New("файл не загружен")
	ErrUnsupportedImage   = errors.New("неподдерживаемый формат изображения")
	ErrInvalidPagination  = errors.New("некорректные параметры пагинации")
	ErrFeedUnavailable    = errors.New("лента Instagram недоступна")
	ErrEmptyUpdate        = errors.New("нет полей для обновления")
	ErrInvalidStatus      = errors.New("недопустимое значение статуса")
)
