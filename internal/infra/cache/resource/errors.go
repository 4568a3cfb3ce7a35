package resource

import "errors"

var (
	// ErrCacheMiss возвращается, когда ресурса нет в кеше
	ErrCacheMiss = errors.New("resource.cache: miss")

	// ErrEncode возвращается при ошибке сериализации ресурса
	ErrEncode = errors.New("resource.cache: failed to encode")

	// ErrDecode возвращается при ошибке десериализации ресурса
	ErrDecode = errors.New("resource.cache: failed to decode")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("resource.cache: redis error")
)
