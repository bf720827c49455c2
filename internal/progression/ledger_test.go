package progression

import (
	"testing"

	"github.com/mayurhingaladiya/csboost-fyp/internal/models"
)

func TestDecodeRewardMetadata(t *testing.T) {
	meta, err := decodeRewardMetadata([]byte(`{"subtopic_id":7,"accuracy":0.8,"first_attempt":true}`))
	if err != nil {
		t.Fatal(err)
	}
	if meta.SubtopicID == nil || *meta.SubtopicID != 7 {
		t.Errorf("SubtopicID = %v, want 7", meta.SubtopicID)
	}
	if meta.Accuracy == nil || *meta.Accuracy != 0.8 {
		t.Errorf("Accuracy = %v, want 0.8", meta.Accuracy)
	}
	if meta.FirstAttempt == nil || !*meta.FirstAttempt {
		t.Errorf("FirstAttempt = %v, want true", meta.FirstAttempt)
	}
}

func TestDecodeRewardMetadataNull(t *testing.T) {
	meta, err := decodeRewardMetadata(nil)
	if err != nil {
		t.Fatal(err)
	}
	if meta != (models.RewardMetadata{}) {
		t.Errorf("nil column decoded to %+v, want zero value", meta)
	}
}

func TestDecodeRewardMetadataMalformed(t *testing.T) {
	if _, err := decodeRewardMetadata([]byte(`{not json`)); err == nil {
		t.Error("malformed metadata decoded without error")
	}
}
