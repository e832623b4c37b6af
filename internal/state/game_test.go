package state

import "testing"

func TestAwardPointsDeclaresWinnerAtThreshold(t *testing.T) {
	gs := NewGameState(nil, nil, 3, 10)
	gs.AwardPoints(0, 2)
	if gs.Over {
		t.Fatal("2 of 3 points should not end the game")
	}
	gs.AwardPoints(0, 1)
	if !gs.Over || gs.Winner != 0 || gs.WinReason != "points" {
		t.Errorf("expected player 0 to win by points, got over=%v winner=%d reason=%q", gs.Over, gs.Winner, gs.WinReason)
	}
}

func TestDeclareIsIdempotent(t *testing.T) {
	gs := NewGameState(nil, nil, 3, 10)
	gs.Declare(0, "points")
	gs.Declare(1, "no_creatures")
	if gs.Winner != 0 || gs.WinReason != "points" {
		t.Error("expected the first Declare to stick")
	}
}

func TestCheckNoActiveLossEndsGame(t *testing.T) {
	gs := NewGameState(nil, nil, 3, 10)
	gs.CheckNoActiveLoss(1)
	if !gs.Over || gs.Winner != 0 || gs.WinReason != "no_creatures" {
		t.Errorf("expected player 0 to win when player 1 has no creatures, got over=%v winner=%d", gs.Over, gs.Winner)
	}
}

func TestCheckNoActiveLossSkipsWhenActivePresent(t *testing.T) {
	gs := NewGameState(nil, nil, 3, 10)
	gs.Player(1).Active = NewFieldCard(CardRef{InstanceID: NewInstanceID(), TemplateID: "basic"}, 1)
	gs.CheckNoActiveLoss(1)
	if gs.Over {
		t.Error("player with an active creature should not lose")
	}
}

func TestBeginAndResolveSelection(t *testing.T) {
	gs := NewGameState(nil, nil, 3, 10)
	if gs.IsSuspended() {
		t.Fatal("fresh game state should not be suspended")
	}
	gs.BeginSelection(PendingSelection{Chooser: 1, Kind: "target", Count: 1})
	if !gs.IsSuspended() {
		t.Error("expected BeginSelection to suspend the game")
	}
	gs.ResolveSelection()
	if gs.IsSuspended() {
		t.Error("expected ResolveSelection to clear the suspension")
	}
}
