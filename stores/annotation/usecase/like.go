package usecase

import (
	"github.com/x-xyz/collectibles/base/ctx"
	"github.com/x-xyz/collectibles/base/log"
	"github.com/x-xyz/collectibles/domain/annotation"
	"github.com/x-xyz/collectibles/domain/listing"
	"github.com/x-xyz/collectibles/domain/session"
)

type LikeUseCaseCfg struct {
	Repo    annotation.Repo
	Session session.Store
}

type likeUseCase struct {
	repo    annotation.Repo
	session session.Store
}

func NewLikeUseCase(cfg *LikeUseCaseCfg) annotation.Usecase {
	return &likeUseCase{
		repo:    cfg.Repo,
		session: cfg.Session,
	}
}

func (u *likeUseCase) Annotate(c ctx.Ctx, key listing.Key) (int64, bool) {
	e, _ := u.session.Get(c, key)
	likes, err := u.repo.GetLikes(c, key)
	if err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Warn("repo.GetLikes failed")
		return 0, e.Liked
	}
	return likes, e.Liked
}

func (u *likeUseCase) Toggle(c ctx.Ctx, key listing.Key) (int64, bool, error) {
	e, _ := u.session.Get(c, key)

	likes, err := u.repo.GetLikes(c, key)
	if err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Warn("repo.GetLikes failed, using session count")
		likes = e.Likes
	}

	e.Liked = !e.Liked
	if e.Liked {
		likes++
	} else if likes > 0 {
		likes--
	}
	e.Likes = likes

	if err := u.repo.SetLikes(c, key, likes); err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Warn("repo.SetLikes failed")
	}

	if err := u.session.Set(c, key, e); err != nil {
		return 0, false, err
	}
	if err := u.session.Flush(c); err != nil {
		c.WithField("err", err).Error("session.Flush failed")
		return 0, false, err
	}
	return e.Likes, e.Liked, nil
}
