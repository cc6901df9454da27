// Package mocks provides centralized test doubles for the generation
// collaborators: the content generator, the video renderer and the image
// renderer.
//
// Each mock exposes a function field per interface method. A nil field falls
// back to a canned happy-path response, so tests only override the behavior
// they care about:
//
//	videos := &mocks.MockVideoRenderer{
//	    RetrieveFn: func(ctx context.Context, id string) (generation.RenderState, error) {
//	        return generation.RenderState{Status: generation.StatusFailed, Error: "quota"}, nil
//	    },
//	}
//
// All mocks record their calls and are safe for concurrent use.
package mocks
