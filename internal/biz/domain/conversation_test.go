package domain

import (
	"reflect"
	"testing"
)

func TestFromPair_DeduplicatesSelfConversation(t *testing.T) {
	conv := FromPair(PairConversation{ChannelID: "D01ABC", UserID1: "U1", UserID2: "U1"})

	if len(conv.Participants) != 1 {
		t.Fatalf("Expected 1 participant for self-conversation, got %d", len(conv.Participants))
	}
	if conv.DirectoryName() != "D01ABC" {
		t.Errorf("Expected channel ID as directory name, got %q", conv.DirectoryName())
	}
}

func TestFromGroup_CreatorFirstAndUnique(t *testing.T) {
	conv := FromGroup(GroupConversation{
		GroupName:     "project-team",
		ChannelID:     "G01XYZ",
		CreatorUserID: "U1",
		MemberUserIDs: "U2, U1 , U3,U2",
	})

	want := []string{"U1", "U2", "U3"}
	if !reflect.DeepEqual(conv.Participants, want) {
		t.Errorf("Expected members %v, got %v", want, conv.Participants)
	}
	if conv.DirectoryName() != "project-team" {
		t.Errorf("Expected group name as directory name, got %q", conv.DirectoryName())
	}
	if !conv.IsGroup() {
		t.Error("Expected IsGroup() to return true")
	}
}

func TestKindFromChannelID(t *testing.T) {
	if KindFromChannelID("D01ABC") != KindPair {
		t.Error("Expected D-prefixed channel to be a pair")
	}
	if KindFromChannelID("G01XYZ") != KindGroup {
		t.Error("Expected G-prefixed channel to be a group")
	}
}

func TestSplitUserIDs(t *testing.T) {
	got := SplitUserIDs(" U1, ,U2 ,")
	want := []string{"U1", "U2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestUniquePreserveOrder(t *testing.T) {
	got := UniquePreserveOrder([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
