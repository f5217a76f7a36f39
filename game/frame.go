package game

// Frame snapshots the state for renderers. Inactive bricks are left out.
func (s *SimulationState) Frame() Frame {
	frame := Frame{
		MessageType: FrameMessageType,
		Tick:        s.Ticks,
		Phase:       s.Phase,
		Lives:       s.Lives,
		Paddle: PaddleView{
			X:      s.Paddle.X,
			Y:      s.Paddle.Y,
			Width:  s.Paddle.Width,
			Height: s.Paddle.Height,
			Color:  s.Paddle.Color,
		},
		Bricks: make([]BrickView, 0, len(s.Bricks)),
		Balls:  make([]BallView, 0, len(s.Balls)),
	}

	for i := range s.Bricks {
		brick := &s.Bricks[i]
		if !brick.Active {
			continue
		}
		frame.Bricks = append(frame.Bricks, BrickView{
			Index:      i,
			X:          brick.X,
			Y:          brick.Y,
			HalfExtent: brick.Width * s.cfg.BrickDrawRatio,
			Color:      brick.Color,
			Kind:       brick.Kind,
			HitPoints:  brick.HitPoints,
		})
	}

	for i := range s.Balls {
		ball := &s.Balls[i]
		frame.Balls = append(frame.Balls, BallView{
			Id:     ball.Id,
			X:      ball.X,
			Y:      ball.Y,
			Radius: ball.Radius,
			Color:  ball.Color,
		})
	}
	return frame
}

// GameOver builds the final spectator message for a finished run.
func (f Frame) GameOver() GameOverMessage {
	return GameOverMessage{
		MessageType: GameOverMessageType,
		Tick:        f.Tick,
		Lives:       f.Lives,
	}
}
