package server

// page is served at the root. The player plays whatever was uploaded through
// the form, which posts its file under the field name "video".
const page = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8" />
	<title>vidcast</title>
	<link href="https://vjs.zencdn.net/8.16.1/video-js.css" rel="stylesheet" />
</head>
<body>
	<video
		id="my-video"
		class="video-js"
		controls
		preload="auto"
		width="640"
		height="264"
		data-setup="{}"
	>
		<source src="/video?name=video" type="video/mp4" />
		<p class="vjs-no-js">
			To view this video please enable JavaScript, and consider upgrading
			to a web browser that
			<a href="https://videojs.com/html5-video-support/" target="_blank">supports HTML5 video</a>
		</p>
	</video>

	<form action="/upload" method="post" enctype="multipart/form-data">
		<input type="file" name="video" accept="video/mp4" />
		<input type="submit" value="Upload" />
	</form>

	<script src="https://vjs.zencdn.net/8.16.1/video.min.js"></script>
</body>
</html>
`
