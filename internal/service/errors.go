package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 业务错误分类
// 所有变更操作的错误都归入以下类别之一，在handler边界统一转换为响应契约；
// 只有存储不可用（ErrUnavailable）属于本次请求不可恢复的故障
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrInvalid          = errors.New("invalid input")
	ErrUnavailable      = errors.New("store unavailable")
)

// storeError 把存储层错误翻译为业务错误分类
// 唯一约束冲突即Conflict信号（去重不做先查后写，见模型索引定义）
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
