package service

import (
	"fmt"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/redis"
	"locallens-server/pkg/response"
)

// FriendService 好友图服务
// 申请生命周期：pending -> accepted（产生对称好友关系）/ rejected，
// 或pending期间由发起方撤回删除
type FriendService struct {
	friendRepo *repository.FriendRepository
	userRepo   *repository.UserRepository
}

// NewFriendService 创建FriendService实例
func NewFriendService(friendRepo *repository.FriendRepository, userRepo *repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendFriendRequest 发送好友申请
// 自我申请为Invalid；已是好友或已有待处理申请（任一方向）为Conflict
func (s *FriendService) SendFriendRequest(fromUserID, toUserID uint) (*model.FriendRequest, error) {
	if fromUserID == 0 {
		return nil, ErrNotAuthenticated
	}
	if fromUserID == toUserID {
		return nil, fmt.Errorf("%w: cannot send friend request to yourself", ErrInvalid)
	}

	// 检查对方是否存在
	if _, err := s.userRepo.GetByID(toUserID); err != nil {
		return nil, storeError(err)
	}

	// 已是好友则拒绝（好友关系对称，查一个方向即可）
	exists, err := s.friendRepo.FriendshipExists(fromUserID, toUserID)
	if err != nil {
		return nil, storeError(err)
	}
	if exists {
		return nil, fmt.Errorf("%w: already friends", ErrConflict)
	}

	// 待处理申请去重交给唯一索引，并发下也成立
	pairMin, pairMax := model.NormalizePair(fromUserID, toUserID)
	active := uint8(1)
	request := &model.FriendRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     model.FriendRequestPending,
		PairMinID:  pairMin,
		PairMaxID:  pairMax,
		Active:     &active,
	}
	if err := s.friendRepo.CreateRequest(request); err != nil {
		return nil, storeError(err)
	}

	// 双方的待处理申请视图失效
	_ = redis.InvalidateViews(fromUserID, redis.ViewPendingRequests)
	_ = redis.InvalidateViews(toUserID, redis.ViewPendingRequests)

	return request, nil
}

// AcceptFriendRequest 接受好友申请
// 仅接收方可接受；仅pending可接受；
// 两条对称好友关系与状态翻转在同一事务内完成
func (s *FriendService) AcceptFriendRequest(requestID, actingUserID uint) error {
	if actingUserID == 0 {
		return ErrNotAuthenticated
	}

	request, err := s.friendRepo.GetRequestByID(requestID)
	if err != nil {
		return storeError(err)
	}
	if request.ToUserID != actingUserID {
		return fmt.Errorf("%w: only the recipient can accept", ErrForbidden)
	}
	if request.Status != model.FriendRequestPending {
		return fmt.Errorf("%w: request already resolved", ErrConflict)
	}

	if err := s.friendRepo.AcceptRequest(request); err != nil {
		return storeError(err)
	}

	// 双方的好友列表与待处理申请视图失效
	_ = redis.InvalidateViews(request.FromUserID, redis.ViewFriendList, redis.ViewPendingRequests)
	_ = redis.InvalidateViews(request.ToUserID, redis.ViewFriendList, redis.ViewPendingRequests)

	return nil
}

// RejectFriendRequest 拒绝好友申请
// 同接受的校验，但只翻转状态，不产生好友关系
func (s *FriendService) RejectFriendRequest(requestID, actingUserID uint) error {
	if actingUserID == 0 {
		return ErrNotAuthenticated
	}

	request, err := s.friendRepo.GetRequestByID(requestID)
	if err != nil {
		return storeError(err)
	}
	if request.ToUserID != actingUserID {
		return fmt.Errorf("%w: only the recipient can reject", ErrForbidden)
	}
	if request.Status != model.FriendRequestPending {
		return fmt.Errorf("%w: request already resolved", ErrConflict)
	}

	if err := s.friendRepo.ResolveRequest(request.ID, model.FriendRequestRejected); err != nil {
		return storeError(err)
	}

	_ = redis.InvalidateViews(request.FromUserID, redis.ViewPendingRequests)
	_ = redis.InvalidateViews(request.ToUserID, redis.ViewPendingRequests)

	return nil
}

// CancelFriendRequest 撤回好友申请
// 仅发起方可撤回，且仅在pending时允许；撤回即删除记录
func (s *FriendService) CancelFriendRequest(requestID, actingUserID uint) error {
	if actingUserID == 0 {
		return ErrNotAuthenticated
	}

	request, err := s.friendRepo.GetRequestByID(requestID)
	if err != nil {
		return storeError(err)
	}
	if request.FromUserID != actingUserID {
		return fmt.Errorf("%w: only the sender can cancel", ErrForbidden)
	}
	if request.Status != model.FriendRequestPending {
		return fmt.Errorf("%w: request already resolved", ErrConflict)
	}

	if err := s.friendRepo.DeleteRequest(request.ID); err != nil {
		return storeError(err)
	}

	_ = redis.InvalidateViews(request.FromUserID, redis.ViewPendingRequests)
	_ = redis.InvalidateViews(request.ToUserID, redis.ViewPendingRequests)

	return nil
}

// ListFriends 获取好友列表（公开信息投影）
func (s *FriendService) ListFriends(userID uint) ([]*response.PublicUser, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	// 优先读视图缓存
	var cached []*response.PublicUser
	if err := redis.GetView(redis.ViewFriendList, userID, &cached); err == nil {
		return cached, nil
	}

	ids, err := s.friendRepo.ListFriendIDs(userID)
	if err != nil {
		return nil, storeError(err)
	}
	users, err := s.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, storeError(err)
	}

	friends := make([]*response.PublicUser, 0, len(users))
	for _, u := range users {
		friends = append(friends, response.FilterPublicUser(u))
	}

	// 异步重建缓存
	go func() {
		_ = redis.CacheView(redis.ViewFriendList, userID, friends)
	}()

	return friends, nil
}

// ListPendingRequests 获取与用户相关的全部待处理申请
// 每条带方向（incoming/outgoing）以及对方的公开信息
func (s *FriendService) ListPendingRequests(userID uint) ([]*response.FriendRequestInfo, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}

	requests, err := s.friendRepo.ListPendingByUser(userID)
	if err != nil {
		return nil, storeError(err)
	}

	// 批量取对方用户信息
	otherIDs := make([]uint, 0, len(requests))
	for _, req := range requests {
		if req.FromUserID == userID {
			otherIDs = append(otherIDs, req.ToUserID)
		} else {
			otherIDs = append(otherIDs, req.FromUserID)
		}
	}
	users, err := s.userRepo.GetByIDs(otherIDs)
	if err != nil {
		return nil, storeError(err)
	}
	userByID := make(map[uint]*model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	views := make([]*response.FriendRequestInfo, 0, len(requests))
	for _, req := range requests {
		otherID := req.FromUserID
		if req.FromUserID == userID {
			otherID = req.ToUserID
		}
		views = append(views, response.FilterFriendRequestInfo(req, userID, userByID[otherID]))
	}

	return views, nil
}
