package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/evote/internal/api"
	"github.com/dmitrijs2005/evote/internal/common"
	"github.com/dmitrijs2005/evote/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Principal is the authenticated caller of a protected method.
type Principal struct {
	UserID string
	Role   string
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// methodRoles lists the protected methods and the role each requires.
// Methods not listed are public.
var methodRoles = map[string]string{
	api.ElectionService_RegisterUser_FullMethodName:   common.RoleAdmin,
	api.ElectionService_CreateElection_FullMethodName: common.RoleAdmin,
	api.ElectionService_UpdateElection_FullMethodName: common.RoleAdmin,
	api.ElectionService_DeleteElection_FullMethodName: common.RoleAdmin,
	api.ElectionService_PublishResults_FullMethodName: common.RoleAdmin,
	api.ElectionService_CastVote_FullMethodName:       common.RoleVoter,
}

func accessTokenFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	role, protected := methodRoles[info.FullMethod]
	if !protected {
		return handler(ctx, req)
	}

	accessToken := accessTokenFromContext(ctx)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	if claims.Role != role {
		s.logger.Warn(ctx, "role mismatch", "method", info.FullMethod, "user_id", claims.UserID, "role", claims.Role)
		return nil, status.Error(codes.PermissionDenied, common.ErrForbidden.Error())
	}

	if role == common.RoleVoter {
		if err := s.svc.Users.CheckEligible(ctx, claims.UserID); err != nil {
			return nil, s.toStatus(ctx, err)
		}
	}

	ctx = withPrincipal(ctx, Principal{UserID: claims.UserID, Role: claims.Role})

	return handler(ctx, req)
}
