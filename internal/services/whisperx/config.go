package whisperx

// Config captures runtime settings for WhisperX operations.
type Config struct {
	// Python is the interpreter that has whisperx installed.
	Python string
	// CUDAEnabled allows GPU acceleration when a driver is present.
	CUDAEnabled bool
	// ComputeType overrides the automatic selection (float16 on CUDA,
	// float32 on CPU). Accepted values: int8, float16, float32.
	ComputeType string
	// HFToken is the Hugging Face token the diarization pipeline requires.
	HFToken string
	// DiarizationEnabled controls whether the diarization stage runs at all.
	DiarizationEnabled bool
}

// Device and compute-type constants.
const (
	CPUDevice       = "cpu"
	CUDADevice      = "cuda"
	CPUComputeType  = "float32"
	CUDAComputeType = "float16"
)

// Progress checkpoints for this backend.
const (
	checkpointStart       = 10
	checkpointModelLoaded = 30
	checkpointAudioLoaded = 40
	checkpointTranscribed = 70
	checkpointAligned     = 85
	checkpointDiarized    = 90
)
