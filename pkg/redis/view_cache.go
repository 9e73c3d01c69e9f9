package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// 读视图缓存
// 变更操作完成后调用 InvalidateViews 使受影响用户的视图失效，
// 下次读取回源数据库并重建缓存（缓存未就绪时读操作直接走数据库）

// 视图名称
const (
	ViewFriendList      = "friends"       // 好友列表
	ViewPendingRequests = "requests"      // 待处理好友申请
	ViewNotifications   = "notifications" // 邀请通知列表
	ViewUserStats       = "stats"         // 用户活动统计
)

const (
	viewKeyPrefix = "ll:view:"      // 视图缓存key前缀
	viewCacheTTL  = 5 * time.Minute // 视图缓存TTL
)

func viewKey(name string, userID uint) string {
	return fmt.Sprintf("%s%s:%d", viewKeyPrefix, name, userID)
}

// CacheView 缓存一个用户的读视图（JSON序列化）
func CacheView(name string, userID uint, v interface{}) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化视图失败: %w", err)
	}

	if err := Set(viewKey(name, userID), data, viewCacheTTL); err != nil {
		return fmt.Errorf("缓存视图失败: %w", err)
	}
	return nil
}

// GetView 读取缓存的视图，未命中返回错误
func GetView(name string, userID uint, out interface{}) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	data, err := Get(viewKey(name, userID))
	if err != nil {
		return fmt.Errorf("视图缓存未命中: %w", err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		return fmt.Errorf("反序列化视图失败: %w", err)
	}
	return nil
}

// InvalidateViews 使一个用户的若干读视图失效
func InvalidateViews(userID uint, names ...string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, viewKey(name, userID))
	}
	if len(keys) == 0 {
		return nil
	}

	if err := Del(keys...); err != nil {
		return fmt.Errorf("视图失效失败: %w", err)
	}
	return nil
}

// InvalidateViewForUsers 使多个用户的同一视图失效（批量邀请等场景）
func InvalidateViewForUsers(name string, userIDs []uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, viewKey(name, id))
	}

	if err := Del(keys...); err != nil {
		return fmt.Errorf("批量视图失效失败: %w", err)
	}
	return nil
}
