package redis

import (
	"fmt"
	"strconv"
	"time"
)

// 未读邀请计数
const (
	UnseenCountKeyPrefix = "ll:unseen:" // 未读邀请计数key前缀
)

// IncrementUnseenCount 增加用户未读邀请计数
func IncrementUnseenCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", UnseenCountKeyPrefix, userID)

	// 使用Redis INCR命令原子性增加计数
	if err := client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("增加未读邀请计数失败: %w", err)
	}

	// 设置TTL，避免计数无限增长（24小时过期）
	if err := client.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("设置未读邀请计数TTL失败: %w", err)
	}

	return nil
}

// BatchIncrementUnseenCount 批量增加多个用户的未读邀请计数（按组邀请场景）
func BatchIncrementUnseenCount(userIDs []uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	// 使用Pipeline批量操作
	pipe := client.Pipeline()
	for _, userID := range userIDs {
		key := fmt.Sprintf("%s%d", UnseenCountKeyPrefix, userID)
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 24*time.Hour)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("批量增加未读邀请计数失败: %w", err)
	}

	return nil
}

// GetUnseenCount 获取用户未读邀请计数
func GetUnseenCount(userID uint) (int64, error) {
	if client == nil {
		return 0, fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", UnseenCountKeyPrefix, userID)

	result, err := Get(key)
	if err != nil {
		// 如果key不存在，返回-1表示需要从数据库获取
		if err.Error() == "redis: nil" {
			return -1, nil
		}
		return 0, fmt.Errorf("获取未读邀请计数失败: %w", err)
	}

	count, err := strconv.ParseInt(result, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("解析未读邀请计数失败: %w", err)
	}

	return count, nil
}

// SetUnseenCount 设置用户未读邀请计数（用于初始化或重置）
func SetUnseenCount(userID uint, count int64) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", UnseenCountKeyPrefix, userID)

	if err := Set(key, count, 24*time.Hour); err != nil {
		return fmt.Errorf("设置未读邀请计数失败: %w", err)
	}

	return nil
}

// ResetUnseenCount 重置用户未读邀请计数为0（全部已读后调用）
func ResetUnseenCount(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", UnseenCountKeyPrefix, userID)

	// 删除key，相当于重置为0
	if err := Del(key); err != nil {
		return fmt.Errorf("重置未读邀请计数失败: %w", err)
	}

	return nil
}
