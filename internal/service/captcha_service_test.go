package service

import (
	"errors"
	"testing"

	"github.com/campus-mall/internal/config"
	"github.com/campus-mall/internal/constants"
)

func TestCaptchaDisabledSceneAlwaysPasses(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "none"})
	if svc.SceneEnabled(constants.CaptchaSceneLogin) {
		t.Fatalf("provider none should disable every scene")
	}
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("expected ErrCaptchaConfigInvalid, got %v", err)
	}
}

func TestCaptchaImageChallengeIsSingleUse(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "image",
		Scenes:   config.CaptchaSceneConfig{Login: true},
	})
	if !svc.SceneEnabled(constants.CaptchaSceneLogin) || svc.SceneEnabled(constants.CaptchaSceneRegister) {
		t.Fatalf("only login scene should be enabled")
	}

	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got %v", err)
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge should carry id and image")
	}
	answer := svc.store().Get(challenge.CaptchaID, false)

	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got %v", err)
	}
	// 校验失败同样会消耗挑战
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("consumed challenge should be rejected, got %v", err)
	}

	fresh, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	code := svc.store().Get(fresh.CaptchaID, false)
	if err := svc.Verify(constants.CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: fresh.CaptchaID, CaptchaCode: code}); err != nil {
		t.Fatalf("correct code should pass, got %v", err)
	}
}
