package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/familyfinance/internal/auth"
	api "github.com/mmynk/familyfinance/pkg/api"
)

// SessionService lets a family member pick their name and get a session token.
type SessionService struct {
	directory  *auth.Directory
	jwtManager *auth.JWTManager
}

// NewSessionService creates a new session service.
func NewSessionService(directory *auth.Directory, jwtManager *auth.JWTManager) *SessionService {
	return &SessionService{
		directory:  directory,
		jwtManager: jwtManager,
	}
}

// ListMembers returns the configured family members.
func (s *SessionService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return connect.NewResponse(&api.ListMembersResponse{Members: s.directory.Members()}), nil
}

// SelectMember starts a session for the named member.
func (s *SessionService) SelectMember(ctx context.Context, req *connect.Request[api.SelectMemberRequest]) (*connect.Response[api.SelectMemberResponse], error) {
	member, err := s.directory.Select(req.Msg.Name)
	if err != nil {
		slog.Warn("Unknown member selected", "name", req.Msg.Name)
		return nil, connect.NewError(connect.CodeNotFound, err)
	}

	token, session, err := s.jwtManager.Generate(member)
	if err != nil {
		slog.Error("Failed to generate token", "member", member, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Member selected", "member", member)
	return connect.NewResponse(&api.SelectMemberResponse{
		Member:    session.Member,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}), nil
}
