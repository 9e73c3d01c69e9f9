package service

import (
	"fmt"
	"strings"
	"time"

	"locallens-server/internal/model"
	"locallens-server/internal/repository"
	"locallens-server/pkg/jwt"
	"locallens-server/pkg/password"
)

// UserService 用户服务（注册/登录/资料与位置更新）
type UserService struct {
	repo       *repository.UserRepository
	jwtService *jwt.JWTService
}

// NewUserService 创建UserService实例
func NewUserService(repo *repository.UserRepository, jwtService *jwt.JWTService) *UserService {
	return &UserService{repo: repo, jwtService: jwtService}
}

// Register 注册
// 成功后签发会话token（Subject为稳定的用户ID）
func (s *UserService) Register(name, username, email, plainPassword string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", ErrInvalid)
	}

	// 密码哈希
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		LastActiveAt: time.Now(),
	}
	if err := s.repo.Create(user); err != nil {
		// 用户名/邮箱唯一冲突
		return nil, "", storeError(err)
	}

	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", user.ID),
		map[string]interface{}{"username": user.Username},
	)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return user, token, nil
}

// Login 登录
func (s *UserService) Login(identifier, plainPassword string) (*model.User, string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plainPassword == "" {
		return nil, "", fmt.Errorf("%w: identifier and password are required", ErrInvalid)
	}

	u, err := s.repo.GetByUsernameOrEmail(identifier)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrInvalid)
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrInvalid)
	}

	token, err := s.jwtService.GenerateToken(
		fmt.Sprintf("%d", u.ID),
		map[string]interface{}{"username": u.Username},
	)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return u, token, nil
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

// UpdateProfileInput 资料更新输入（nil字段不变）
type UpdateProfileInput struct {
	Name          *string
	Avatar        *string
	LocationLabel *string
}

// UpdateProfile 更新用户资料
func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Avatar != nil {
		fields["avatar"] = *input.Avatar
	}
	if input.LocationLabel != nil {
		fields["location_label"] = *input.LocationLabel
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.UpdateProfile(userID, fields); err != nil {
		return storeError(err)
	}
	return nil
}

// UpdateLocation 更新位置共享设置与坐标
// 关闭共享时清空坐标
func (s *UserService) UpdateLocation(userID uint, share bool, lat, lon *float64) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	if share && (lat == nil || lon == nil) {
		return fmt.Errorf("%w: coordinates are required when sharing location", ErrInvalid)
	}

	fields := map[string]interface{}{
		"share_location": share,
	}
	if share {
		fields["lat"] = *lat
		fields["lon"] = *lon
	} else {
		fields["lat"] = nil
		fields["lon"] = nil
	}

	if err := s.repo.UpdateProfile(userID, fields); err != nil {
		return storeError(err)
	}
	return nil
}
